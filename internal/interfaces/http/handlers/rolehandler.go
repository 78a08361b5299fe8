package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/interfaces/http/middleware"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

type RoleHandler struct {
	createRoleUC   *usecases.CreateRoleUseCase
	updateRoleUC   *usecases.UpdateRoleUseCase
	deleteRoleUC   *usecases.DeleteRoleUseCase
	listRolesUC    *usecases.ListRolesUseCase
	listPermsUC    *usecases.ListPermissionsUseCase
	effectivePerms *usecases.EffectivePermissionsUseCase
	logger         logger.Interface
}

func NewRoleHandler(
	createRoleUC *usecases.CreateRoleUseCase,
	updateRoleUC *usecases.UpdateRoleUseCase,
	deleteRoleUC *usecases.DeleteRoleUseCase,
	listRolesUC *usecases.ListRolesUseCase,
	listPermsUC *usecases.ListPermissionsUseCase,
	effectivePerms *usecases.EffectivePermissionsUseCase,
	logger logger.Interface,
) *RoleHandler {
	return &RoleHandler{
		createRoleUC:   createRoleUC,
		updateRoleUC:   updateRoleUC,
		deleteRoleUC:   deleteRoleUC,
		listRolesUC:    listRolesUC,
		listPermsUC:    listPermsUC,
		effectivePerms: effectivePerms,
		logger:         logger,
	}
}

type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=64"`
	Description string   `json:"description" binding:"max=255"`
	Permissions []string `json:"permissions" binding:"required,dive,permcode"`
}

// Create adds a custom role to the tenant.
func (h *RoleHandler) Create(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.createRoleUC.Execute(c.Request.Context(), usecases.CreateRoleCommand{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, toRoleResponse(role), "role created")
}

// List returns the tenant's roles, system roles included.
func (h *RoleHandler) List(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)

	roles, err := h.listRolesUC.Execute(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		items = append(items, toRoleResponse(role))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type UpdateRoleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=2,max=64"`
	Permissions *[]string `json:"permissions" binding:"omitempty,dive,permcode"`
}

// Update renames a role or replaces its permission grants.
func (h *RoleHandler) Update(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	roleID, ok := parseUintParam(c, "role_id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cmd := usecases.UpdateRoleCommand{
		TenantID: tenantID,
		RoleID:   roleID,
		Name:     req.Name,
	}
	if req.Permissions != nil {
		cmd.Permissions = *req.Permissions
		cmd.ReplacePermissions = true
	}

	role, err := h.updateRoleUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role updated", toRoleResponse(role))
}

// Delete removes a custom role. Members holding it fall back to their
// legacy role.
func (h *RoleHandler) Delete(c *gin.Context) {
	tenantID, _ := middleware.TenantID(c)
	roleID, ok := parseUintParam(c, "role_id")
	if !ok {
		return
	}

	err := h.deleteRoleUC.Execute(c.Request.Context(), usecases.DeleteRoleCommand{
		TenantID: tenantID,
		RoleID:   roleID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "role deleted", nil)
}

// ListPermissions returns the permission catalog.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.listPermsUC.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		items = append(items, toPermissionResponse(p))
	}
	utils.SuccessResponse(c, http.StatusOK, "", items)
}

type EffectivePermissionsResponse struct {
	Universal bool     `json:"universal"`
	Codes     []string `json:"codes"`
}

// MyPermissions returns the caller's effective permission set in the
// current tenant scope.
func (h *RoleHandler) MyPermissions(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "tenant scope not resolved")
		return
	}

	perms, err := h.effectivePerms.Execute(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", EffectivePermissionsResponse{
		Universal: perms.IsUniversal(),
		Codes:     perms.Codes(),
	})
}
