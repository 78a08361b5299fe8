package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanModel stores subscription plans. Prices are minor units (paise);
// Limits is a JSON object of feature code to limit, 0 meaning unlimited.
type PlanModel struct {
	ID           uint   `gorm:"primaryKey"`
	SID          string `gorm:"uniqueIndex;size:32;not null"`
	Code         string `gorm:"uniqueIndex;size:64;not null"`
	Name         string `gorm:"size:128;not null"`
	Description  string `gorm:"type:text"`
	PriceMonthly int64  `gorm:"not null;default:0"`
	PriceYearly  int64  `gorm:"not null;default:0"`
	TrialDays    int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null;default:true;index"`
	IsPublic     bool   `gorm:"not null;default:true"`
	Limits       datatypes.JSON
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (PlanModel) TableName() string {
	return "plans"
}

type PlanFeatureModel struct {
	ID          uint   `gorm:"primaryKey"`
	PlanID      uint   `gorm:"not null;uniqueIndex:idx_plan_feature"`
	FeatureCode string `gorm:"size:64;not null;uniqueIndex:idx_plan_feature"`
	Enabled     bool   `gorm:"not null;default:true"`
	Limits      datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PlanFeatureModel) TableName() string {
	return "plan_features"
}
