// internal/authz/scope.go
package authz

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/domain"
)

// EntityKind identifies one of the closed set of domain record types the
// guard knows how to resolve ownership for. Adding a kind is a registry
// entry here plus a lookup query in the resolver, nothing else.
type EntityKind string

const (
	KindTicket      EntityKind = "chamado"
	KindReservation EntityKind = "reserva"
	KindUnitCharge  EntityKind = "cobranca_unidade"
)

var entityKinds = map[EntityKind]struct{}{
	KindTicket:      {},
	KindReservation: {},
	KindUnitCharge:  {},
}

// NormalizeKind canonicalizes a caller-supplied entity-type token
// ("cobranca-unidade", "Cobranca Unidade" and "cobranca_unidade" are the
// same kind) and rejects anything outside the closed set.
func NormalizeKind(token string) (EntityKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	kind := EntityKind(normalized)
	if _, ok := entityKinds[kind]; !ok {
		return "", fmt.Errorf("%w: unknown entity kind %q", domain.ErrInvalidArgument, token)
	}
	return kind, nil
}

// Kinds returns the registered entity kinds, sorted for stable output.
func Kinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(entityKinds))
	for k := range entityKinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// EntityScope is the ownership triple of a scoped record: the organization
// it belongs to and, when present, the unit and person it is tied to.
type EntityScope struct {
	OrganizationID uuid.UUID
	UnitID         *uuid.UUID
	OwnerPersonID  *uuid.UUID
}

// ScopeResolver answers the read-only ownership queries the guard depends
// on. Implementations must report missing records as domain.ErrNotFound (or
// a more specific sentinel) and storage faults as domain.ErrUnavailable.
type ScopeResolver interface {
	// UnitOrganization resolves the organization that owns a unit.
	UnitOrganization(ctx context.Context, unitID uuid.UUID) (uuid.UUID, error)

	// EntityScope resolves the ownership triple for a record of the given kind.
	EntityScope(ctx context.Context, kind EntityKind, id uuid.UUID) (*EntityScope, error)
}

//go:generate mockgen -source=./scope.go -destination=../mocks/mock_scope_resolver.go -package=mocks ScopeResolver
