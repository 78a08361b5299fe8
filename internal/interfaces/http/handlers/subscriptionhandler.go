package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC     *usecases.CreateSubscriptionUseCase
	transitionUC *usecases.TransitionSubscriptionUseCase
	renewUC      *usecases.RenewSubscriptionUseCase
	changePlanUC *usecases.ChangePlanUseCase
	entitlement  *usecases.EntitlementService
	quota        *usecases.QuotaService
	logger       logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	transitionUC *usecases.TransitionSubscriptionUseCase,
	renewUC *usecases.RenewSubscriptionUseCase,
	changePlanUC *usecases.ChangePlanUseCase,
	entitlement *usecases.EntitlementService,
	quota *usecases.QuotaService,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:     createUC,
		transitionUC: transitionUC,
		renewUC:      renewUC,
		changePlanUC: changePlanUC,
		entitlement:  entitlement,
		quota:        quota,
		logger:       logger,
	}
}

type CreateSubscriptionRequest struct {
	PlanCode     string `json:"plan_code" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly yearly"`
	SkipTrial    bool   `json:"skip_trial"`
}

// Create subscribes the tenant to a plan. Plans with trial days start in
// trial unless skip_trial is set.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		TenantID:     tenantID,
		PlanCode:     req.PlanCode,
		BillingCycle: req.BillingCycle,
		SkipTrial:    req.SkipTrial,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toSubscriptionResponse(sub), "subscription created")
}

type EntitlementResponse struct {
	Entitled        bool                  `json:"entitled"`
	EffectiveStatus string                `json:"effective_status"`
	InTrial         bool                  `json:"in_trial"`
	Subscription    *SubscriptionResponse `json:"subscription,omitempty"`
	Plan            *PlanResponse         `json:"plan,omitempty"`
}

// Current returns the tenant's subscription with its effective
// entitlement state.
func (h *SubscriptionHandler) Current(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	res, err := h.entitlement.Check(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := EntitlementResponse{
		Entitled:        res.Entitled,
		EffectiveStatus: res.EffectiveStatus.String(),
		InTrial:         res.InTrial,
	}
	if res.Subscription != nil {
		sub := toSubscriptionResponse(res.Subscription)
		resp.Subscription = &sub
	}
	if res.Plan != nil {
		plan := toPlanResponse(res.Plan)
		resp.Plan = &plan
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// Activate transitions a trial or past-due subscription to active.
func (h *SubscriptionHandler) Activate(c *gin.Context) {
	h.transition(c, h.transitionUC.Activate)
}

// Suspend freezes the subscription. Operator or dunning driven.
func (h *SubscriptionHandler) Suspend(c *gin.Context) {
	h.transition(c, h.transitionUC.Suspend)
}

// SuspendForTenant suspends the subscription of the tenant named in the
// path. Operator surface; no tenant scope on the request.
func (h *SubscriptionHandler) SuspendForTenant(c *gin.Context) {
	tenantID, ok := parseUintParam(c, "tenant_id")
	if !ok {
		return
	}

	sub, err := h.transitionUC.Suspend(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription suspended", toSubscriptionResponse(sub))
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// Cancel ends the subscription at the tenant's request.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.transitionUC.Cancel(c.Request.Context(), tenantID, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription cancelled", toSubscriptionResponse(sub))
}

// Renew rolls the subscription into its next billing period.
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	sub, err := h.renewUC.Execute(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription renewed", toSubscriptionResponse(sub))
}

type ChangePlanRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
}

type ChangePlanResponse struct {
	Subscription    SubscriptionResponse `json:"subscription"`
	ProrationCredit int64                `json:"proration_credit"`
	OldPlanCode     string               `json:"old_plan_code"`
	NewPlanCode     string               `json:"new_plan_code"`
}

// ChangePlan moves the subscription to another plan, crediting the
// unused share of the current period.
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.changePlanUC.Execute(c.Request.Context(), usecases.ChangePlanCommand{
		TenantID:    tenantID,
		NewPlanCode: req.PlanCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "plan changed", ChangePlanResponse{
		Subscription:    toSubscriptionResponse(result.Subscription),
		ProrationCredit: result.ProrationCredit,
		OldPlanCode:     result.OldPlanCode,
		NewPlanCode:     result.NewPlanCode,
	})
}

type ConsumeQuotaRequest struct {
	FeatureCode string `json:"feature_code" binding:"required"`
}

type QuotaResponse struct {
	FeatureCode string `json:"feature_code"`
	Used        int64  `json:"used"`
	Limit       int64  `json:"limit"`
}

// ConsumeQuota meters one unit of a feature explicitly, for consumers
// that are not fronted by the quota middleware.
func (h *SubscriptionHandler) ConsumeQuota(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req ConsumeQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.quota.CheckAndIncrement(c.Request.Context(), tenantID, req.FeatureCode)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", QuotaResponse{
		FeatureCode: res.FeatureCode,
		Used:        res.Used,
		Limit:       res.Limit,
	})
}

// ReleaseQuota gives back one unit within the current period.
func (h *SubscriptionHandler) ReleaseQuota(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req ConsumeQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.quota.Release(c.Request.Context(), tenantID, req.FeatureCode); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "quota released", nil)
}

func (h *SubscriptionHandler) transition(c *gin.Context, apply func(ctx context.Context, tenantID uint) (*subscription.Subscription, error)) {
	tenantID, _ := middleware.TenantID(c)

	sub, err := apply(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "subscription updated", toSubscriptionResponse(sub))
}
