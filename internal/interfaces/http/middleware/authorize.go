package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	acusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/accesscontrol/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/constants"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

const tenantHeader = "X-Tenant-ID"

// ResolveTenant establishes the tenant scope for the request and verifies
// the caller belongs to it. Tenant scope travels in the X-Tenant-ID header
// rather than the token, so a revoked membership takes effect immediately.
func ResolveTenant(resolvePrincipal *acusecases.ResolvePrincipalUseCase, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		raw := c.GetHeader(tenantHeader)
		if raw == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, "missing "+tenantHeader+" header")
			c.Abort()
			return
		}
		tenantID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || tenantID == 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid "+tenantHeader+" header")
			c.Abort()
			return
		}

		principal, err := resolvePrincipal.Execute(c.Request.Context(), acusecases.ResolvePrincipalCommand{
			UserID:   userID,
			TenantID: uint(tenantID),
		})
		if err != nil {
			switch {
			case errors.Is(err, identity.ErrNotTenantMember):
				utils.ErrorResponse(c, http.StatusForbidden, "not a member of this tenant")
			case errors.Is(err, identity.ErrUserNotFound), errors.Is(err, identity.ErrUserInactive):
				utils.ErrorResponse(c, http.StatusUnauthorized, "account is not active")
			default:
				log.Errorw("failed to resolve principal", "error", err, "user_id", userID, "tenant_id", tenantID)
				utils.ErrorResponse(c, http.StatusInternalServerError, "failed to resolve tenant scope")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTenantID, uint(tenantID))
		c.Set(constants.ContextKeyPrincipal, principal)
		c.Next()
	}
}

// Principal returns the resolved principal stored by ResolveTenant.
func Principal(c *gin.Context) (accesscontrol.Principal, bool) {
	v, ok := c.Get(constants.ContextKeyPrincipal)
	if !ok {
		return accesscontrol.Principal{}, false
	}
	p, ok := v.(accesscontrol.Principal)
	return p, ok
}

// RequirePermission gates the route on a single permission code. Denials
// carry the decision's reason so clients can tell a missing membership
// from a missing grant.
func RequirePermission(authorize *acusecases.AuthorizeActionUseCase, code string, log logger.Interface) gin.HandlerFunc {
	return requireDecision(authorize, acusecases.AuthorizeActionCommand{PermissionCode: code}, log)
}

// RequireAnyPermission gates the route on at least one of the given codes.
func RequireAnyPermission(authorize *acusecases.AuthorizeActionUseCase, codes []string, log logger.Interface) gin.HandlerFunc {
	return requireDecision(authorize, acusecases.AuthorizeActionCommand{AnyOf: codes}, log)
}

func requireDecision(authorize *acusecases.AuthorizeActionUseCase, template acusecases.AuthorizeActionCommand, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		tenantID, ok := TenantID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "tenant scope not resolved")
			c.Abort()
			return
		}

		cmd := template
		cmd.UserID = userID
		cmd.TenantID = tenantID

		decision, err := authorize.Execute(c.Request.Context(), cmd)
		if err != nil {
			log.Errorw("authorization check failed", "error", err, "user_id", userID, "tenant_id", tenantID)
			utils.ErrorResponse(c, http.StatusInternalServerError, "authorization check failed")
			c.Abort()
			return
		}
		if !decision.Allowed() {
			utils.ErrorResponse(c, http.StatusForbidden, decision.Message())
			c.Abort()
			return
		}
		c.Next()
	}
}
