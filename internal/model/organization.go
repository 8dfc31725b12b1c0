// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationType string

const (
	OrgTypeCondominium OrganizationType = "condominium"
	OrgTypeAssociation OrganizationType = "association"
)

// Organization is the tenancy boundary: a condominium or association.
// Every scoped record belongs to exactly one.
type Organization struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string           `gorm:"type:text;not null" json:"name"`
	OrgType   OrganizationType `gorm:"type:organization_type;not null;default:'condominium'" json:"org_type"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Units []Unit `gorm:"foreignKey:OrganizationID" json:"-"`
}

// Unit is a single dwelling inside an organization ("Bloco A ap 101").
// Resident memberships are scoped to one unit.
type Unit struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	Label          string    `gorm:"type:text;not null" json:"label"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}
