package accesscontrol

import "errors"

var (
	ErrRoleNotFound          = errors.New("role not found")
	ErrRoleNameExists        = errors.New("role name already exists in this tenant")
	ErrSystemRoleImmutable   = errors.New("system roles cannot be modified")
	ErrSystemRoleUndeletable = errors.New("system roles cannot be deleted")
	ErrPermissionNotFound    = errors.New("permission not found")
	ErrUnknownPermission     = errors.New("unknown permission code")
	ErrRoleWrongTenant       = errors.New("role does not belong to this tenant")
)
