package models

import (
	"time"

	"gorm.io/gorm"
)

type TenantModel struct {
	ID                    uint   `gorm:"primaryKey"`
	SID                   string `gorm:"uniqueIndex;size:32;not null"`
	Name                  string `gorm:"size:128;not null"`
	PartnerID             *uint  `gorm:"index"`
	Status                string `gorm:"size:20;not null;index"`
	Environment           string `gorm:"size:20;not null;default:'production'"`
	CurrentSubscriptionID *uint  `gorm:"index"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (TenantModel) TableName() string {
	return "tenants"
}
