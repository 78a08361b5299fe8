package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentModel stores collection attempts. Gateway identifiers are opaque;
// gateway_payment_id is the idempotency key for callback reconciliation.
type PaymentModel struct {
	ID               uint    `gorm:"primaryKey"`
	SID              string  `gorm:"uniqueIndex;size:32;not null"`
	InvoiceID        uint    `gorm:"not null;index"`
	TenantID         uint    `gorm:"not null;index"`
	AmountMinor      int64   `gorm:"not null"`
	Currency         string  `gorm:"size:10;not null;default:'INR'"`
	Status           string  `gorm:"size:20;not null;index"`
	Method           *string `gorm:"size:32"`
	GatewayOrderID   *string `gorm:"size:128;index"`
	GatewayPaymentID *string `gorm:"size:128;uniqueIndex"`
	GatewaySignature *string `gorm:"size:255"`
	FailureReason    *string `gorm:"size:255"`
	RefundAmount     int64   `gorm:"not null;default:0"`
	RefundedAt       *time.Time
	PaidAt           *time.Time
	Version          int `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
