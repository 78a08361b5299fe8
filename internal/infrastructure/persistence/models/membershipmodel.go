package models

import (
	"time"

	"gorm.io/gorm"
)

// MembershipModel maps the tenant_users join table. A user has at most one
// live membership per tenant; the unique index spans the soft-delete column
// so departed members can rejoin.
type MembershipModel struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_user_tenant"`
	TenantID   uint   `gorm:"not null;uniqueIndex:idx_user_tenant;index"`
	LegacyRole string `gorm:"size:20;not null"`
	RoleID     *uint  `gorm:"index"`
	IsOwner    bool   `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"uniqueIndex:idx_user_tenant;index"`
}

func (MembershipModel) TableName() string {
	return "tenant_users"
}
