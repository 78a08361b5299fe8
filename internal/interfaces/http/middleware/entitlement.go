package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	subusecases "github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/application/subscription/usecases"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/logger"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// RequireEntitlement blocks feature routes when the tenant's subscription
// does not entitle it to use the product right now. Unsubscribed and
// lapsed tenants get 402 so clients can route the user to billing.
func RequireEntitlement(entitlement *subusecases.EntitlementService, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID, ok := TenantID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "tenant scope not resolved")
			c.Abort()
			return
		}

		res, err := entitlement.RequireEntitled(c.Request.Context(), tenantID)
		if err != nil {
			if errors.Is(err, subscription.ErrNoActiveSubscription) {
				msg := "no active subscription"
				if res != nil {
					msg = "subscription is " + res.EffectiveStatus.String()
				}
				utils.ErrorResponse(c, http.StatusPaymentRequired, msg)
			} else {
				log.Errorw("entitlement check failed", "error", err, "tenant_id", tenantID)
				utils.ErrorResponse(c, http.StatusInternalServerError, "entitlement check failed")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
