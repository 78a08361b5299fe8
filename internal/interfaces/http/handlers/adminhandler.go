package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	idusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/permission"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// AdminHandler is the platform-operator surface: partner onboarding,
// tenant oversight, operator grants, and maintenance tasks.
type AdminHandler struct {
	createPartnerUC *idusecases.CreatePartnerUseCase
	trialReminderUC *subusecases.TrialReminderUseCase
	tenantRepo      identity.TenantRepository
	enforcer        *permission.Enforcer
	logger          logger.Interface
}

func NewAdminHandler(
	createPartnerUC *idusecases.CreatePartnerUseCase,
	trialReminderUC *subusecases.TrialReminderUseCase,
	tenantRepo identity.TenantRepository,
	enforcer *permission.Enforcer,
	logger logger.Interface,
) *AdminHandler {
	return &AdminHandler{
		createPartnerUC: createPartnerUC,
		trialReminderUC: trialReminderUC,
		tenantRepo:      tenantRepo,
		enforcer:        enforcer,
		logger:          logger,
	}
}

type CreatePartnerRequest struct {
	Name           string  `json:"name" binding:"required,min=2,max=128"`
	CommissionRate float64 `json:"commission_rate" binding:"min=0,max=100"`
}

// CreatePartner onboards a reseller partner.
func (h *AdminHandler) CreatePartner(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	partner, err := h.createPartnerUC.Execute(c.Request.Context(), idusecases.CreatePartnerCommand{
		Name:           req.Name,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toPartnerResponse(partner), "partner created")
}

// ListTenants returns tenants, filterable by partner and status.
func (h *AdminHandler) ListTenants(c *gin.Context) {
	p := utils.ParsePagination(c)

	filter := identity.TenantFilter{Page: p.Page, PageSize: p.PageSize}
	if raw := c.Query("partner_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid partner_id filter")
			return
		}
		partnerID := uint(v)
		filter.PartnerID = &partnerID
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}

	tenants, total, err := h.tenantRepo.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		items = append(items, toTenantResponse(t))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

// SuspendTenant freezes a tenant.
func (h *AdminHandler) SuspendTenant(c *gin.Context) {
	h.mutateTenant(c, func(t *identity.Tenant) error { return t.Suspend() }, "tenant suspended")
}

// ReactivateTenant lifts a suspension.
func (h *AdminHandler) ReactivateTenant(c *gin.Context) {
	h.mutateTenant(c, func(t *identity.Tenant) error { return t.Reactivate() }, "tenant reactivated")
}

func (h *AdminHandler) mutateTenant(c *gin.Context, mutate func(*identity.Tenant) error, message string) {
	tenantID, ok := parseUintParam(c, "tenant_id")
	if !ok {
		return
	}

	tenant, err := h.tenantRepo.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := mutate(tenant); err != nil {
		respondError(c, err)
		return
	}
	if err := h.tenantRepo.Update(c.Request.Context(), tenant); err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, message, toTenantResponse(tenant))
}

type OperatorGrantRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// GrantOperator gives a user the platform_operator role.
func (h *AdminHandler) GrantOperator(c *gin.Context) {
	var req OperatorGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.enforcer.GrantOperator(strconv.FormatUint(uint64(req.UserID), 10)); err != nil {
		h.logger.Errorw("failed to grant operator role", "error", err, "user_id", req.UserID)
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "operator role granted", nil)
}

// RevokeOperator removes the platform_operator role from a user.
func (h *AdminHandler) RevokeOperator(c *gin.Context) {
	var req OperatorGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.enforcer.RevokeOperator(strconv.FormatUint(uint64(req.UserID), 10)); err != nil {
		h.logger.Errorw("failed to revoke operator role", "error", err, "user_id", req.UserID)
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "operator role revoked", nil)
}

type TrialReminderResponse struct {
	Sent int `json:"sent"`
}

// RunTrialReminders sends trial-ending reminders for the configured
// window. Meant to be hit by the scheduler.
func (h *AdminHandler) RunTrialReminders(c *gin.Context) {
	sent, err := h.trialReminderUC.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "trial reminders dispatched", TrialReminderResponse{Sent: sent})
}
