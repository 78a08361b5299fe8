package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/permission"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// RequireSuperAdmin restricts a route to super admins. Used for the few
// operations that even platform operators must not perform, like granting
// the operator role itself.
func RequireSuperAdmin(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !IsSuperAdmin(c) {
			utils.ErrorResponse(c, http.StatusForbidden, "super admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireOperator gates platform-admin routes. Super admins pass outright;
// everyone else needs the platform_operator role with a policy matching
// the resource and action.
func RequireOperator(enforcer *permission.Enforcer, resource, action string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if IsSuperAdmin(c) {
			c.Next()
			return
		}

		allowed, err := enforcer.Enforce(fmt.Sprintf("%d", userID), resource, action)
		if err != nil {
			log.Errorw("operator policy check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "policy check failed")
			c.Abort()
			return
		}
		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "platform operator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
