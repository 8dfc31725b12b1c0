// internal/model/membership.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authority a membership grants inside its organization.
// RolePlatformAdmin is never stored on a membership row; it comes from the
// user record and bypasses per-organization checks entirely.
type Role string

const (
	RolePlatformAdmin Role = "platform_admin"
	RoleCondoAdmin    Role = "condo_admin"
	RoleCondoStaff    Role = "condo_staff"
	RoleResident      Role = "resident"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePlatformAdmin, RoleCondoAdmin, RoleCondoStaff, RoleResident:
		return true
	}
	return false
}

// Membership ties a user to an organization with a role. Residents are
// additionally pinned to a single unit. Rows are deactivated on removal,
// never deleted; only active rows are visible to authorization.
type Membership struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID         *uuid.UUID `gorm:"type:uuid" json:"unit_id,omitempty"`
	Role           Role       `gorm:"type:text;not null" json:"role"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	InvitedByID    *uuid.UUID `gorm:"type:uuid" json:"invited_by_id,omitempty"`
	DeactivatedAt  *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	User         User         `gorm:"foreignKey:UserID" json:"-"`
}
