package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func membershipColumns() []string {
	return []string{"id", "user_id", "organization_id", "unit_id", "role", "is_active"}
}

func TestActiveByUserAndOrg(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()

	t.Run("single active row", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE user_id = .+ AND organization_id = .+ AND is_active = .+`).
			WillReturnRows(sqlmock.NewRows(membershipColumns()).
				AddRow(id, userID, orgID, nil, "condo_staff", true))

		m, err := repo.ActiveByUserAndOrg(context.Background(), userID, orgID)
		assert.NoError(t, err)
		assert.Equal(t, id, m.ID)
		assert.Equal(t, model.RoleCondoStaff, m.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		mock.ExpectQuery(`SELECT \* FROM "memberships"`).
			WillReturnRows(sqlmock.NewRows(membershipColumns()))

		_, err := repo.ActiveByUserAndOrg(context.Background(), userID, orgID)
		assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
	})

	t.Run("ambiguous duplicate rows are unavailable", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		mock.ExpectQuery(`SELECT \* FROM "memberships"`).
			WillReturnRows(sqlmock.NewRows(membershipColumns()).
				AddRow(uuid.New(), userID, orgID, nil, "condo_staff", true).
				AddRow(uuid.New(), userID, orgID, nil, "resident", true))

		_, err := repo.ActiveByUserAndOrg(context.Background(), userID, orgID)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
		assert.NotErrorIs(t, err, domain.ErrMembershipNotFound)
	})

	t.Run("storage fault is unavailable", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		mock.ExpectQuery(`SELECT \* FROM "memberships"`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.ActiveByUserAndOrg(context.Background(), userID, orgID)
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})
}

func TestActiveByUser(t *testing.T) {
	userID := uuid.New()

	gdb, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(gdb)

	mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE user_id = .+ AND is_active = .+`).
		WillReturnRows(sqlmock.NewRows(membershipColumns()).
			AddRow(uuid.New(), userID, uuid.New(), nil, "condo_admin", true).
			AddRow(uuid.New(), userID, uuid.New(), nil, "resident", true))

	memberships, err := repo.ActiveByUser(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, memberships, 2)
}

func TestDeactivate(t *testing.T) {
	t.Run("active row is soft-removed within its organization", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "memberships" SET .+ WHERE id = .+ AND organization_id = .+ AND is_active = .+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Deactivate(context.Background(), uuid.New(), uuid.New())
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("membership of another organization reads as not found", func(t *testing.T) {
		gdb, mock := newMockDB(t)
		repo := repository.NewMembershipRepository(gdb)

		// The org filter matches zero rows for a foreign membership id.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "memberships" SET .+ WHERE id = .+ AND organization_id = .+ AND is_active = .+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Deactivate(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
	})
}

func TestCreateRejectsDuplicateActive(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := repository.NewMembershipRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	unitID := uuid.New()
	err := repo.Create(context.Background(), &model.Membership{
		UserID:         uuid.New(),
		OrganizationID: uuid.New(),
		UnitID:         &unitID,
		Role:           model.RoleResident,
		IsActive:       true,
	})
	assert.ErrorIs(t, err, domain.ErrMembershipExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
