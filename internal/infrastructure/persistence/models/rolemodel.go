package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleModel stores both system roles (tenant_id IS NULL) and tenant-scoped
// custom roles. Permissions are a JSON array of permission codes.
type RoleModel struct {
	ID          uint   `gorm:"primaryKey"`
	SID         string `gorm:"uniqueIndex;size:32;not null"`
	TenantID    *uint  `gorm:"uniqueIndex:idx_tenant_role_name;index"`
	Code        string `gorm:"size:64;not null;index"`
	Name        string `gorm:"size:64;not null;uniqueIndex:idx_tenant_role_name"`
	Description string `gorm:"size:255"`
	Permissions datatypes.JSON
	IsSystem    bool `gorm:"not null;default:false;index"`
	IsDefault   bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"uniqueIndex:idx_tenant_role_name;index"`
}

func (RoleModel) TableName() string {
	return "roles"
}
