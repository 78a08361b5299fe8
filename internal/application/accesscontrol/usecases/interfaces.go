package usecases

import "context"

// Transactor runs a function inside a database transaction, carrying the
// transaction handle through the context. Satisfied by *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CachedPermissions is the cacheable projection of an effective permission
// set. Universal marks super-admin and owner grants.
type CachedPermissions struct {
	Universal bool     `json:"universal"`
	Codes     []string `json:"codes"`
}

// PermissionCache is an optional read-through cache for resolved permission
// sets, keyed by (user, tenant). Implementations return (nil, nil) on miss.
type PermissionCache interface {
	Get(ctx context.Context, userID, tenantID uint) (*CachedPermissions, error)
	Set(ctx context.Context, userID, tenantID uint, perms CachedPermissions) error
	// InvalidateTenant drops every cached set for a tenant. Called after
	// role mutations, which can widen or narrow any member's permissions.
	InvalidateTenant(ctx context.Context, tenantID uint) error
	InvalidateUser(ctx context.Context, userID, tenantID uint) error
}
