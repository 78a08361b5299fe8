package identity

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user inactive")
	ErrEmailExists       = errors.New("email already registered")
	ErrTenantNotFound    = errors.New("tenant not found")
	ErrTenantSuspended   = errors.New("tenant suspended")
	ErrPartnerNotFound   = errors.New("partner not found")
	ErrPartnerSlugExists = errors.New("partner slug already exists")
	ErrNotTenantMember   = errors.New("not a member of this tenant")
	ErrMembershipExists  = errors.New("user is already a member of this tenant")
)
