package models

import (
	"time"

	"gorm.io/gorm"
)

// UserModel is the persistence model for platform users. It is the
// anti-corruption layer between the identity domain and the database.
type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	SID          string `gorm:"uniqueIndex;size:32;not null"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:128;not null"`
	IsSuperAdmin bool   `gorm:"not null;default:false"`
	Status       string `gorm:"size:20;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}
