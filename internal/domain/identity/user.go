package identity

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/biztime"
	"github.com/NiveshSarthi/Synditech-RealNext-sub001/internal/shared/id"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusPending  UserStatus = "pending"
)

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusPending:
		return true
	default:
		return false
	}
}

// User is a global identity. A user may hold memberships in any number of
// tenants; super admins bypass all tenant-scoped checks.
type User struct {
	id           uint
	sid          string
	email        string
	passwordHash string
	name         string
	isSuperAdmin bool
	status       UserStatus
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with a hashed password.
func NewUser(email, plainPassword, name string, bcryptCost int) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if len(plainPassword) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := biztime.NowUTC()
	return &User{
		sid:          id.MustGenerateWithPrefix(id.PrefixUser),
		email:        email,
		passwordHash: string(hash),
		name:         name,
		status:       UserStatusActive,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	userID uint,
	sid, email, passwordHash, name string,
	isSuperAdmin bool,
	status UserStatus,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid user status: %s", status)
	}

	return &User{
		id:           userID,
		sid:          sid,
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		isSuperAdmin: isSuperAdmin,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint             { return u.id }
func (u *User) SID() string          { return u.sid }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Name() string         { return u.name }
func (u *User) IsSuperAdmin() bool   { return u.isSuperAdmin }
func (u *User) Status() UserStatus   { return u.status }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// SetID sets the user ID (only for persistence layer use).
func (u *User) SetID(userID uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if userID == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = userID
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func (u *User) VerifyPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(plain)) == nil
}

// PromoteToSuperAdmin grants the global super-admin override.
func (u *User) PromoteToSuperAdmin() {
	if u.isSuperAdmin {
		return
	}
	u.isSuperAdmin = true
	u.updatedAt = biztime.NowUTC()
}

// Deactivate marks the user inactive.
func (u *User) Deactivate() {
	if u.status == UserStatusInactive {
		return
	}
	u.status = UserStatusInactive
	u.updatedAt = biztime.NowUTC()
}

// IsActive reports whether the user may authenticate.
func (u *User) IsActive() bool {
	return u.status == UserStatusActive
}
