package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// ConsumeQuota meters one unit of the feature before the handler runs.
// The increment is atomic, so a burst at the limit admits exactly the
// remaining quota and rejects the rest with 429.
func ConsumeQuota(quota *subusecases.QuotaService, featureCode string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := TenantID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "tenant scope not resolved")
			c.Abort()
			return
		}

		res, err := quota.CheckAndIncrement(c.Request.Context(), tenantID, featureCode)
		if err != nil {
			switch {
			case errors.Is(err, subscription.ErrQuotaExceeded):
				utils.ErrorResponse(c, http.StatusTooManyRequests, "quota exceeded for "+featureCode)
			case errors.Is(err, subscription.ErrNoActiveSubscription):
				utils.ErrorResponse(c, http.StatusPaymentRequired, "no active subscription")
			case errors.Is(err, subscription.ErrFeatureNotInPlan):
				utils.ErrorResponse(c, http.StatusForbidden, featureCode+" is not included in the plan")
			default:
				log.Errorw("quota check failed", "error", err, "tenant_id", tenantID, "feature_code", featureCode)
				utils.ErrorResponse(c, http.StatusInternalServerError, "quota check failed")
			}
			c.Abort()
			return
		}

		if res.Limit > 0 {
			c.Header("X-Quota-Limit", fmt.Sprintf("%d", res.Limit))
			c.Header("X-Quota-Used", fmt.Sprintf("%d", res.Used))
		}
		c.Next()
	}
}
