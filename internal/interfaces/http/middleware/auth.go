package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/infrastructure/auth"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/constants"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils/logutil"
)

const accessTokenCookie = "access_token"

// RequireAuth verifies the access token and loads the caller's identity
// into the request context. The token is read from the HttpOnly cookie
// first, then from the Authorization header for API clients.
func RequireAuth(jwtService *auth.JWTService, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, 401, "authentication required")
			c.Abort()
			return
		}

		claims, err := jwtService.Verify(token)
		if err != nil {
			log.Debugw("token verification failed",
				"error", err,
				"token", logutil.TruncateForLog(token, 12))
			utils.ErrorResponse(c, 401, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeySuperAdmin, claims.IsSuperAdmin)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// UserID returns the authenticated user's ID from the gin context. The
// second return is false when RequireAuth did not run.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsSuperAdmin reports whether the authenticated user is a super admin.
func IsSuperAdmin(c *gin.Context) bool {
	v, ok := c.Get(constants.ContextKeySuperAdmin)
	if !ok {
		return false
	}
	flag, _ := v.(bool)
	return flag
}

// TenantID returns the resolved tenant scope from the gin context.
func TenantID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(constants.ContextKeyTenantID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
