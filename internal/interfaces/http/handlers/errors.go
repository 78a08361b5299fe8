package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/accesscontrol"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/billing"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/identity"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/domain/subscription"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/utils"
)

// domainStatus maps domain sentinel errors to HTTP statuses. Anything
// unmapped falls through to the generic AppError handling, which hides
// internal details behind a 500.
var domainStatus = []struct {
	err    error
	status int
}{
	{identity.ErrUserNotFound, http.StatusNotFound},
	{identity.ErrUserInactive, http.StatusForbidden},
	{identity.ErrEmailExists, http.StatusConflict},
	{identity.ErrTenantNotFound, http.StatusNotFound},
	{identity.ErrTenantSuspended, http.StatusForbidden},
	{identity.ErrPartnerNotFound, http.StatusNotFound},
	{identity.ErrPartnerSlugExists, http.StatusConflict},
	{identity.ErrNotTenantMember, http.StatusForbidden},
	{identity.ErrMembershipExists, http.StatusConflict},

	{accesscontrol.ErrRoleNotFound, http.StatusNotFound},
	{accesscontrol.ErrRoleNameExists, http.StatusConflict},
	{accesscontrol.ErrSystemRoleImmutable, http.StatusForbidden},
	{accesscontrol.ErrSystemRoleUndeletable, http.StatusForbidden},
	{accesscontrol.ErrPermissionNotFound, http.StatusNotFound},
	{accesscontrol.ErrUnknownPermission, http.StatusBadRequest},
	{accesscontrol.ErrRoleWrongTenant, http.StatusNotFound},

	{subscription.ErrSubscriptionNotFound, http.StatusNotFound},
	{subscription.ErrPlanNotFound, http.StatusNotFound},
	{subscription.ErrPlanInactive, http.StatusConflict},
	{subscription.ErrTenantAlreadySubscribed, http.StatusConflict},
	{subscription.ErrNoActiveSubscription, http.StatusPaymentRequired},
	{subscription.ErrQuotaExceeded, http.StatusTooManyRequests},
	{subscription.ErrFeatureNotInPlan, http.StatusForbidden},

	{billing.ErrInvoiceNotFound, http.StatusNotFound},
	{billing.ErrPaymentNotFound, http.StatusNotFound},
	{billing.ErrInvoiceNumberConflict, http.StatusConflict},
	{billing.ErrDuplicateGatewayPayment, http.StatusConflict},
	{billing.ErrSignatureVerificationFailed, http.StatusBadRequest},
}

// respondError translates a use-case error into the uniform error envelope.
func respondError(c *gin.Context, err error) {
	for _, m := range domainStatus {
		if errors.Is(err, m.err) {
			utils.ErrorResponse(c, m.status, m.err.Error())
			return
		}
	}
	utils.ErrorResponseWithError(c, err)
}
