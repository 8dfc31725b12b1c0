// internal/authz/scope_pg.go
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sindigo/sindigo/internal/domain"
)

// entityQueries maps each registered kind to the query that resolves its
// ownership triple. Every query returns exactly (organization_id, unit_id,
// owner_person_id) so the resident scope rule stays in one place.
var entityQueries = map[EntityKind]string{
	KindTicket: `
		SELECT organization_id, unit_id, requester_person_id
		FROM tickets WHERE id = $1`,
	KindReservation: `
		SELECT organization_id, unit_id, requester_person_id
		FROM reservations WHERE id = $1`,
	KindUnitCharge: `
		SELECT organization_id, unit_id, payer_person_id
		FROM financial_records WHERE id = $1`,
}

// PgScopeResolver resolves entity ownership with raw SQL over a pgx pool.
// The guard issues these lookups on every entity-scoped check, so they
// bypass the ORM the same way the rest of the hot read path does.
type PgScopeResolver struct {
	pool *pgxpool.Pool
}

func NewPgScopeResolver(ctx context.Context, connString string) (*PgScopeResolver, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PgScopeResolver{pool: pool}, nil
}

// NewPgScopeResolverFromPool wraps an existing pool, mainly for tests and
// for binaries that already manage one.
func NewPgScopeResolverFromPool(pool *pgxpool.Pool) *PgScopeResolver {
	return &PgScopeResolver{pool: pool}
}

func (r *PgScopeResolver) UnitOrganization(ctx context.Context, unitID uuid.UUID) (uuid.UUID, error) {
	var orgID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT organization_id FROM units WHERE id = $1`, unitID).Scan(&orgID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%w: unit %s", domain.ErrUnitNotFound, unitID)
		}
		return uuid.Nil, fmt.Errorf("%w: resolving unit organization: %v", domain.ErrUnavailable, err)
	}
	return orgID, nil
}

func (r *PgScopeResolver) EntityScope(ctx context.Context, kind EntityKind, id uuid.UUID) (*EntityScope, error) {
	query, ok := entityQueries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no lookup registered for entity kind %q", domain.ErrInvalidArgument, kind)
	}

	var scope EntityScope
	err := r.pool.QueryRow(ctx, query, id).Scan(&scope.OrganizationID, &scope.UnitID, &scope.OwnerPersonID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, id)
		}
		return nil, fmt.Errorf("%w: resolving %s scope: %v", domain.ErrUnavailable, kind, err)
	}
	return &scope, nil
}

// Close releases the underlying pool.
func (r *PgScopeResolver) Close() {
	r.pool.Close()
}
