package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/testutil"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	vo "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription/valueobjects"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
)

type entitlementFixture struct {
	subs     *testutil.MockSubscriptionRepository
	plans    *testutil.MockPlanRepository
	features *testutil.MockPlanFeatureRepository
	usage    *testutil.MockUsageRepository
	ent      *subusecases.EntitlementService
	quota    *subusecases.QuotaService
}

func newEntitlementFixture(t *testing.T) *entitlementFixture {
	t.Helper()
	log := testutil.NewMockLogger()
	f := &entitlementFixture{
		subs:     testutil.NewMockSubscriptionRepository(),
		plans:    testutil.NewMockPlanRepository(),
		features: testutil.NewMockPlanFeatureRepository(),
		usage:    testutil.NewMockUsageRepository(),
	}
	f.ent = subusecases.NewEntitlementService(f.subs, f.plans, log)
	f.quota = subusecases.NewQuotaService(f.ent, f.features, f.usage, log)
	return f
}

func (f *entitlementFixture) seedSubscribedTenant(t *testing.T, tenantID uint, limits map[string]int64) *subscription.Plan {
	t.Helper()
	plan, err := subscription.NewPlan("starter", "Starter", "", 99900, 999000, 0, vo.NewPlanLimits(limits))
	require.NoError(t, err)
	require.NoError(t, f.plans.Create(context.Background(), plan))

	cycle, err := vo.ParseBillingCycle("monthly")
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(tenantID, plan.ID(), nil, cycle, 0)
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(context.Background(), sub))
	return plan
}

func (f *entitlementFixture) router(tenantID uint, featureCode string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := testutil.NewMockLogger()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", uint(1))
		c.Set("tenant_id", tenantID)
	})
	r.POST("/resource",
		middleware.RequireEntitlement(f.ent, log),
		middleware.ConsumeQuota(f.quota, featureCode, log),
		func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"ok": true})
		})
	return r
}

func TestRequireEntitlement_NoSubscription(t *testing.T) {
	f := newEntitlementFixture(t)
	r := f.router(1, "contacts")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestConsumeQuota_UnderLimit(t *testing.T) {
	f := newEntitlementFixture(t)
	f.seedSubscribedTenant(t, 1, map[string]int64{"contacts": 5})
	r := f.router(1, "contacts")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Quota-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-Quota-Used"))
}

func TestConsumeQuota_AtLimit(t *testing.T) {
	f := newEntitlementFixture(t)
	f.seedSubscribedTenant(t, 1, map[string]int64{"contacts": 2})
	r := f.router(1, "contacts")

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/resource", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestConsumeQuota_FeatureDisabledInPlan(t *testing.T) {
	f := newEntitlementFixture(t)
	plan := f.seedSubscribedTenant(t, 1, map[string]int64{"contacts": 5})
	feature, err := subscription.NewPlanFeature(plan.ID(), "campaigns", false, vo.NewPlanLimits(nil))
	require.NoError(t, err)
	require.NoError(t, f.features.Create(context.Background(), feature))
	r := f.router(1, "campaigns")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/resource", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
