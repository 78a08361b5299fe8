package models

import (
	"time"

	"gorm.io/gorm"
)

type PartnerModel struct {
	ID             uint    `gorm:"primaryKey"`
	SID            string  `gorm:"uniqueIndex;size:32;not null"`
	Name           string  `gorm:"size:128;not null"`
	Slug           string  `gorm:"uniqueIndex;size:16;not null"`
	ReferralCode   string  `gorm:"uniqueIndex;size:16;not null"`
	CommissionRate float64 `gorm:"not null;default:0"`
	Status         string  `gorm:"size:20;not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (PartnerModel) TableName() string {
	return "partners"
}
