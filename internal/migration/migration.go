// internal/migration/migration.go
package migration

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Migrator handles the database schema for the platform
type Migrator struct {
	DB *sql.DB
}

// NewMigrator creates a new migrator
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{DB: db}
}

// Open connects to the database with the lib/pq driver and pings it.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// InitializeSchema initializes the database schema
func (m *Migrator) InitializeSchema() error {
	// Create the schema if it doesn't exist
	_, err := m.DB.Exec(`
	CREATE EXTENSION IF NOT EXISTS citext;

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email CITEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		password_hash TEXT NOT NULL,
		person_id UUID,
		is_platform_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		org_type TEXT NOT NULL DEFAULT 'condominium',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS units (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		label TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE(organization_id, label)
	);

	CREATE TABLE IF NOT EXISTS memberships (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		unit_id UUID REFERENCES units(id),
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		invited_by_id UUID REFERENCES users(id),
		deactivated_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS financial_records (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		unit_id UUID REFERENCES units(id),
		payer_person_id UUID,
		description TEXT NOT NULL,
		amount_cents BIGINT NOT NULL,
		status TEXT NOT NULL DEFAULT 'aberto',
		due_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS tickets (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		unit_id UUID REFERENCES units(id),
		requester_person_id UUID,
		subject TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'aberto',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS reservations (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		organization_id UUID NOT NULL REFERENCES organizations(id),
		unit_id UUID REFERENCES units(id),
		requester_person_id UUID,
		common_area TEXT NOT NULL,
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_memberships_user_org
		ON memberships(user_id, organization_id) WHERE is_active;
	CREATE INDEX IF NOT EXISTS idx_financial_records_org ON financial_records(organization_id);
	CREATE INDEX IF NOT EXISTS idx_financial_records_unit ON financial_records(unit_id);
	CREATE INDEX IF NOT EXISTS idx_units_org ON units(organization_id);
	`)

	return err
}
