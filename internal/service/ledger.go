// internal/service/ledger.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/repository"
)

// Transition is a named lifecycle move on a financial record.
type Transition string

const (
	TransitionAprovar   Transition = "aprovar"
	TransitionPagar     Transition = "pagar"
	TransitionConciliar Transition = "conciliar"
	TransitionFechar    Transition = "fechar"
	TransitionCancelar  Transition = "cancelar"
	TransitionReabrir   Transition = "reabrir"
)

type transitionSpec struct {
	from []model.RecordStatus
	to   model.RecordStatus
}

// transitions is the legality table of the record lifecycle:
// aberto → aprovado → pago → conciliado → fechado, with cancelado reachable
// from aberto/aprovado and reabrir taking fechado back to aberto.
var transitions = map[Transition]transitionSpec{
	TransitionAprovar:   {from: []model.RecordStatus{model.StatusAberto}, to: model.StatusAprovado},
	TransitionPagar:     {from: []model.RecordStatus{model.StatusAprovado}, to: model.StatusPago},
	TransitionConciliar: {from: []model.RecordStatus{model.StatusPago}, to: model.StatusConciliado},
	TransitionFechar:    {from: []model.RecordStatus{model.StatusConciliado}, to: model.StatusFechado},
	TransitionCancelar:  {from: []model.RecordStatus{model.StatusAberto, model.StatusAprovado}, to: model.StatusCancelado},
	TransitionReabrir:   {from: []model.RecordStatus{model.StatusFechado}, to: model.StatusAberto},
}

// transitionRoles maps each transition to the roles that may invoke it. The
// guard context's RequireRole is the enforcement point; platform admins
// always pass it, which is exactly how reabrir stays platform-admin-only:
// no membership role appears in its set.
var transitionRoles = map[Transition][]model.Role{
	TransitionAprovar:   {model.RoleCondoAdmin},
	TransitionPagar:     {model.RoleCondoAdmin, model.RoleResident},
	TransitionConciliar: {model.RoleCondoAdmin},
	TransitionFechar:    {model.RoleCondoAdmin},
	TransitionCancelar:  {model.RoleCondoAdmin},
	TransitionReabrir:   {model.RolePlatformAdmin},
}

// LedgerService owns the financial-record lifecycle. Authorization context
// arrives resolved from the interceptor; this service refines it with the
// per-transition role set and applies the state machine.
type LedgerService struct {
	records repository.FinancialRecordRepositoryIface
}

func NewLedgerService(records repository.FinancialRecordRepositoryIface) *LedgerService {
	return &LedgerService{records: records}
}

type CreateRecordInput struct {
	OrganizationID uuid.UUID  `json:"organizacaoId"`
	UnitID         *uuid.UUID `json:"unidadeId,omitempty"`
	PayerPersonID  *uuid.UUID `json:"pagadorId,omitempty"`
	Description    string     `json:"descricao" validate:"required"`
	AmountCents    int64      `json:"valorCentavos" validate:"required,gt=0"`
	DueDate        time.Time  `json:"vencimento" validate:"required"`
}

func (s *LedgerService) Create(ctx context.Context, input CreateRecordInput) (*model.FinancialRecord, error) {
	rec := &model.FinancialRecord{
		OrganizationID: input.OrganizationID,
		UnitID:         input.UnitID,
		PayerPersonID:  input.PayerPersonID,
		Description:    input.Description,
		AmountCents:    input.AmountCents,
		Status:         model.StatusAberto,
		DueDate:        input.DueDate,
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *LedgerService) Get(ctx context.Context, id uuid.UUID) (*model.FinancialRecord, error) {
	return s.records.FindByID(ctx, id)
}

func (s *LedgerService) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FinancialRecord, error) {
	return s.records.ListByOrganization(ctx, orgID)
}

func (s *LedgerService) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*model.FinancialRecord, error) {
	return s.records.ListByUnit(ctx, unitID)
}

// ApplyTransition moves a record through the lifecycle. The caller's guard
// context must already carry organization access for the record; this
// method adds the transition's role requirement and the state machine's own
// legality check.
func (s *LedgerService) ApplyTransition(ctx context.Context, gctx authz.Context, recordID uuid.UUID, name string) (*model.FinancialRecord, error) {
	transition := Transition(strings.ToLower(strings.TrimSpace(name)))
	spec, ok := transitions[transition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTransition, name)
	}

	gctx = gctx.RequireRole(transitionRoles[transition]...)
	if err := gctx.Err(); err != nil {
		return nil, err
	}

	rec, err := s.records.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	if !statusIn(rec.Status, spec.from) {
		return nil, fmt.Errorf("%w: cannot %s a record in status %s", domain.ErrInvalidTransition, transition, rec.Status)
	}

	if err := s.records.UpdateStatus(ctx, recordID, rec.Status, spec.to); err != nil {
		return nil, err
	}

	rec.Status = spec.to
	return rec, nil
}

func statusIn(status model.RecordStatus, set []model.RecordStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}
