// internal/model/entity.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a support request (chamado) raised by a person, usually tied to
// their unit. Owned and mutated by the front-desk subsystem; the guard only
// reads its scope columns.
type Ticket struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID            *uuid.UUID `gorm:"type:uuid" json:"unit_id,omitempty"`
	RequesterPersonID *uuid.UUID `gorm:"type:uuid" json:"requester_person_id,omitempty"`
	Subject           string     `gorm:"type:text;not null" json:"subject"`
	Status            string     `gorm:"type:text;not null;default:'open'" json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Reservation is a common-area booking (reserva).
type Reservation struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID            *uuid.UUID `gorm:"type:uuid" json:"unit_id,omitempty"`
	RequesterPersonID *uuid.UUID `gorm:"type:uuid" json:"requester_person_id,omitempty"`
	CommonArea        string     `gorm:"type:text;not null" json:"common_area"`
	StartsAt          time.Time  `json:"starts_at"`
	EndsAt            time.Time  `json:"ends_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
