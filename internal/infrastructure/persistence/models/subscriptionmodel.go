package models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionModel struct {
	ID                 uint      `gorm:"primaryKey"`
	SID                string    `gorm:"uniqueIndex;size:32;not null"`
	TenantID           uint      `gorm:"not null;index"`
	PlanID             uint      `gorm:"not null;index"`
	PartnerID          *uint     `gorm:"index"`
	Status             string    `gorm:"size:20;not null;index"`
	BillingCycle       string    `gorm:"size:20;not null"`
	CurrentPeriodStart time.Time `gorm:"not null"`
	CurrentPeriodEnd   time.Time `gorm:"not null;index"`
	TrialEndsAt        *time.Time `gorm:"index"`
	CancelledAt        *time.Time
	CancelReason       *string `gorm:"size:255"`
	Version            int     `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// SubscriptionUsageModel is the usage ledger. usage_count only moves
// through the conditional UPDATE in the repository; the unique index makes
// lazy row creation race-safe.
type SubscriptionUsageModel struct {
	ID             uint      `gorm:"primaryKey"`
	SubscriptionID uint      `gorm:"not null;uniqueIndex:idx_sub_feature_period"`
	FeatureCode    string    `gorm:"size:64;not null;uniqueIndex:idx_sub_feature_period"`
	PeriodStart    time.Time `gorm:"not null;uniqueIndex:idx_sub_feature_period"`
	PeriodEnd      time.Time `gorm:"not null;index"`
	UsageCount     int64     `gorm:"not null;default:0"`
	LastResetAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (SubscriptionUsageModel) TableName() string {
	return "subscription_usage"
}
