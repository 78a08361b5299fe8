package accesscontrol

import (
	"fmt"
	"time"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
)

// Permission is a catalog entry. The catalog is static reference data shared
// by all tenants; authorization decisions only ever compare code strings.
type Permission struct {
	id        uint
	code      string
	name      string
	category  string
	createdAt time.Time
	updatedAt time.Time
}

// NewPermission creates a catalog entry.
func NewPermission(code, name, category string) (*Permission, error) {
	if code == "" {
		return nil, fmt.Errorf("permission code is required")
	}
	if name == "" {
		return nil, fmt.Errorf("permission name is required")
	}

	now := biztime.NowUTC()
	return &Permission{
		code:      code,
		name:      name,
		category:  category,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPermission reconstructs a catalog entry from persistence.
func ReconstructPermission(permissionID uint, code, name, category string, createdAt, updatedAt time.Time) (*Permission, error) {
	if permissionID == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}
	if code == "" {
		return nil, fmt.Errorf("permission code is required")
	}

	return &Permission{
		id:        permissionID,
		code:      code,
		name:      name,
		category:  category,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (p *Permission) ID() uint             { return p.id }
func (p *Permission) Code() string         { return p.code }
func (p *Permission) Name() string         { return p.name }
func (p *Permission) Category() string     { return p.category }
func (p *Permission) CreatedAt() time.Time { return p.createdAt }
func (p *Permission) UpdatedAt() time.Time { return p.updatedAt }

// SetID sets the permission ID (only for persistence layer use).
func (p *Permission) SetID(permissionID uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if permissionID == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = permissionID
	return nil
}
