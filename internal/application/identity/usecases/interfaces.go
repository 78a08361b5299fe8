package usecases

import (
	"context"
	"time"
)

// Transactor runs a function inside a database transaction. Satisfied by
// *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenService issues signed access tokens for authenticated users.
type TokenService interface {
	Issue(userID uint, email string, isSuperAdmin bool) (token string, expiresAt time.Time, err error)
}
