package models

import "time"

// PermissionModel is the immutable permission catalog seeded by migrations.
type PermissionModel struct {
	ID        uint   `gorm:"primaryKey"`
	Code      string `gorm:"uniqueIndex;size:64;not null"`
	Name      string `gorm:"size:128;not null"`
	Category  string `gorm:"size:64;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PermissionModel) TableName() string {
	return "permissions"
}
