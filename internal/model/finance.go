// internal/model/finance.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus is the lifecycle state of a financial record. Transition
// legality lives in the ledger service; these are only the states.
type RecordStatus string

const (
	StatusAberto     RecordStatus = "aberto"
	StatusAprovado   RecordStatus = "aprovado"
	StatusPago       RecordStatus = "pago"
	StatusConciliado RecordStatus = "conciliado"
	StatusFechado    RecordStatus = "fechado"
	StatusCancelado  RecordStatus = "cancelado"
)

// FinancialRecord is a charge raised by an organization, optionally against
// a single unit (cobranca de unidade). Unit-level records are visible to the
// unit's resident; organization-level records are staff/admin only.
type FinancialRecord struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"organization_id"`
	UnitID         *uuid.UUID   `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	PayerPersonID  *uuid.UUID   `gorm:"type:uuid" json:"payer_person_id,omitempty"`
	Description    string       `gorm:"type:text;not null" json:"description"`
	AmountCents    int64        `gorm:"not null" json:"amount_cents"`
	Status         RecordStatus `gorm:"type:text;not null;default:'aberto'" json:"status"`
	DueDate        time.Time    `json:"due_date"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}
