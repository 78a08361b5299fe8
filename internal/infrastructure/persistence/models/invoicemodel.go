package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// InvoiceModel stores billing documents. LineItems is an ordered JSON
// array; amounts are minor units and always satisfy amount + tax = total.
type InvoiceModel struct {
	ID             uint   `gorm:"primaryKey"`
	SID            string `gorm:"uniqueIndex;size:32;not null"`
	InvoiceNumber  string `gorm:"uniqueIndex;size:32;not null"`
	TenantID       uint   `gorm:"not null;index"`
	SubscriptionID *uint  `gorm:"index"`
	LineItems      datatypes.JSON
	Amount         int64     `gorm:"not null"`
	TaxAmount      int64     `gorm:"not null"`
	TotalAmount    int64     `gorm:"not null"`
	Currency       string    `gorm:"size:10;not null;default:'INR'"`
	Status         string    `gorm:"size:20;not null;index"`
	PeriodStart    time.Time `gorm:"not null"`
	PeriodEnd      time.Time `gorm:"not null"`
	PaidAt         *time.Time
	FailureReason  *string `gorm:"size:255"`
	Notes          *string `gorm:"type:text"`
	Version        int     `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceSequenceModel is the per-month counter row locked FOR UPDATE while
// an invoice number is assigned.
type InvoiceSequenceModel struct {
	ID        uint `gorm:"primaryKey"`
	Year      int  `gorm:"not null;uniqueIndex:idx_sequence_month"`
	Month     int  `gorm:"not null;uniqueIndex:idx_sequence_month"`
	LastValue int64 `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
