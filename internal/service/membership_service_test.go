package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/mocks"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/service"
)

type stubOrgRepo struct {
	org *model.Organization
}

func (s *stubOrgRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	if s.org == nil || s.org.ID != id {
		return nil, domain.ErrOrganizationNotFound
	}
	return s.org, nil
}

func (s *stubOrgRepo) FindAll(ctx context.Context) ([]*model.Organization, error) {
	if s.org == nil {
		return nil, nil
	}
	return []*model.Organization{s.org}, nil
}

func TestMembershipAssign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()
	unitID := uuid.New()
	org := &model.Organization{ID: orgID, Name: "Residencial Aurora"}
	user := &model.User{ID: userID, Email: "ana@example.com", FirstName: "Ana"}

	newService := func(memberships *mocks.MockMembershipRepositoryIface, users *mocks.MockUserRepositoryIface, units *mocks.MockUnitRepositoryIface) *service.MembershipService {
		// nil mailer: notification is best-effort and skipped when unconfigured
		return service.NewMembershipService(memberships, users, &stubOrgRepo{org: org}, units, nil, "http://localhost:8080")
	}

	t.Run("resident with unit", func(t *testing.T) {
		users := mocks.NewMockUserRepositoryIface(ctrl)
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		units := mocks.NewMockUnitRepositoryIface(ctrl)
		units.EXPECT().OrganizationID(gomock.Any(), unitID).Return(orgID, nil)
		users.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		memberships.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		m, err := newService(memberships, users, units).Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleResident,
			UnitID:         &unitID,
		})

		assert.NoError(t, err)
		assert.True(t, m.IsActive)
		assert.Equal(t, model.RoleResident, m.Role)
	})

	t.Run("resident without unit is invalid", func(t *testing.T) {
		svc := newService(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockUnitRepositoryIface(ctrl))
		_, err := svc.Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleResident,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("staff with unit is invalid", func(t *testing.T) {
		svc := newService(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockUnitRepositoryIface(ctrl))
		_, err := svc.Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleCondoStaff,
			UnitID:         &unitID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("platform_admin cannot be granted through a membership", func(t *testing.T) {
		svc := newService(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockUnitRepositoryIface(ctrl))
		_, err := svc.Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RolePlatformAdmin,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("unit from another organization is invalid", func(t *testing.T) {
		units := mocks.NewMockUnitRepositoryIface(ctrl)
		units.EXPECT().OrganizationID(gomock.Any(), unitID).Return(uuid.New(), nil)

		svc := newService(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), units)
		_, err := svc.Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleResident,
			UnitID:         &unitID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("duplicate active membership surfaces as conflict", func(t *testing.T) {
		users := mocks.NewMockUserRepositoryIface(ctrl)
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		users.EXPECT().FindByID(gomock.Any(), userID).Return(user, nil)
		memberships.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrMembershipExists)

		_, err := newService(memberships, users, mocks.NewMockUnitRepositoryIface(ctrl)).Assign(context.Background(), service.AssignInput{
			OrganizationID: orgID,
			UserID:         userID,
			Role:           model.RoleCondoStaff,
		})
		assert.ErrorIs(t, err, domain.ErrMembershipExists)
	})
}
