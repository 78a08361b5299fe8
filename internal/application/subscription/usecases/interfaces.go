package usecases

import "context"

// Transactor runs a function inside a database transaction. Satisfied by
// *db.TransactionManager.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TrialReminderSender delivers trial-expiry reminder notifications.
type TrialReminderSender interface {
	SendTrialEndingReminder(ctx context.Context, tenantID uint, daysLeft int) error
}
