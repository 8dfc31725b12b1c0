// internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"type:citext;uniqueIndex;not null" json:"email"`
	FirstName    string     `gorm:"type:text;not null" json:"first_name"`
	LastName     string     `gorm:"type:text" json:"last_name"`
	Status       UserStatus `gorm:"type:user_status;not null;default:'pending'" json:"status"`
	PasswordHash string     `gorm:"type:text;not null" json:"-"`

	// PersonID links the account to the person record used for resident-scope
	// ownership checks. Staff accounts may have none.
	PersonID *uuid.UUID `gorm:"type:uuid" json:"person_id,omitempty"`

	// IsPlatformAdmin is stamped into token claims at issuance and trusted
	// from there; the guard never re-reads it from storage.
	IsPlatformAdmin bool `gorm:"not null;default:false" json:"is_platform_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
