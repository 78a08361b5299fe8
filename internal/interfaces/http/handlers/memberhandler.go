package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/identity/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type MemberHandler struct {
	addMemberUC    *usecases.AddMemberUseCase
	removeMemberUC *usecases.RemoveMemberUseCase
	listMembersUC  *usecases.ListMembersUseCase
	assignRoleUC   *acusecases.AssignRoleUseCase
	logger         logger.Interface
}

func NewMemberHandler(
	addMemberUC *usecases.AddMemberUseCase,
	removeMemberUC *usecases.RemoveMemberUseCase,
	listMembersUC *usecases.ListMembersUseCase,
	assignRoleUC *acusecases.AssignRoleUseCase,
	logger logger.Interface,
) *MemberHandler {
	return &MemberHandler{
		addMemberUC:    addMemberUC,
		removeMemberUC: removeMemberUC,
		listMembersUC:  listMembersUC,
		assignRoleUC:   assignRoleUC,
		logger:         logger,
	}
}

// List returns the tenant's members with pagination.
func (h *MemberHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	p := utils.ParsePagination(c)

	members, total, err := h.listMembersUC.Execute(c.Request.Context(), tenantID, p.Page, p.PageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		items = append(items, toMemberResponse(m))
	}
	utils.ListSuccessResponse(c, items, total, p.Page, p.PageSize)
}

type AddMemberRequest struct {
	Email      string `json:"email" binding:"required,email"`
	LegacyRole string `json:"legacy_role" binding:"required,oneof=admin manager sales support user"`
}

// Add attaches an existing user to the tenant.
func (h *MemberHandler) Add(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := h.addMemberUC.Execute(c.Request.Context(), usecases.AddMemberCommand{
		TenantID:   tenantID,
		Email:      req.Email,
		LegacyRole: req.LegacyRole,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toMembershipResponse(membership), "member added")
}

// Remove detaches a member from the tenant.
func (h *MemberHandler) Remove(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	err := h.removeMemberUC.Execute(c.Request.Context(), usecases.RemoveMemberCommand{
		TenantID:     tenantID,
		TargetUserID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "member removed", nil)
}

type AssignRoleRequest struct {
	// RoleID null clears the custom role so the legacy role applies again.
	RoleID *uint `json:"role_id"`
}

// AssignRole sets or clears a member's custom role.
func (h *MemberHandler) AssignRole(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	userID, ok := parseUintParam(c, "user_id")
	if !ok {
		return
	}

	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	membership, err := h.assignRoleUC.Execute(c.Request.Context(), acusecases.AssignRoleCommand{
		TenantID:     tenantID,
		TargetUserID: userID,
		RoleID:       req.RoleID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role assigned", toMembershipResponse(membership))
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(v), true
}
