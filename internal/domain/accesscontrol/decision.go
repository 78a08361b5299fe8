package accesscontrol

import (
	"fmt"
	"strings"
)

// DenyReason classifies why an authorization decision denied.
type DenyReason string

const (
	DenyNotTenantMember       DenyReason = "not_tenant_member"
	DenyMissingPermission     DenyReason = "missing_permission"
	DenyNoMatchingPermissions DenyReason = "no_matching_permissions"
)

// Decision is the outcome of an authorization check. It is a value, not an
// error: denial is an expected result surfaced to the controller layer.
type Decision struct {
	allowed bool
	reason  DenyReason
	detail  string
}

// Allow is the positive decision.
func Allow() Decision {
	return Decision{allowed: true}
}

// Deny builds a negative decision with a typed reason.
func Deny(reason DenyReason, detail string) Decision {
	return Decision{reason: reason, detail: detail}
}

func (d Decision) Allowed() bool      { return d.allowed }
func (d Decision) Reason() DenyReason { return d.reason }
func (d Decision) Detail() string     { return d.detail }

// Message renders a human-readable denial message for HTTP 403 responses.
func (d Decision) Message() string {
	if d.allowed {
		return "allowed"
	}
	switch d.reason {
	case DenyNotTenantMember:
		return "not a member of this tenant"
	case DenyMissingPermission:
		return fmt.Sprintf("missing permission: %s", d.detail)
	case DenyNoMatchingPermissions:
		return fmt.Sprintf("none of the required permissions granted: %s", d.detail)
	default:
		return "access denied"
	}
}

// Authorize is the single decision function for one permission code. It is
// pure: auditing is the caller's responsibility.
func Authorize(perms PermissionSet, code string) Decision {
	if perms.Contains(code) {
		return Allow()
	}
	return Deny(DenyMissingPermission, code)
}

// AuthorizeAny allows if the effective set contains at least one of the codes.
func AuthorizeAny(perms PermissionSet, codes ...string) Decision {
	if perms.ContainsAny(codes...) {
		return Allow()
	}
	return Deny(DenyNoMatchingPermissions, strings.Join(codes, ","))
}
