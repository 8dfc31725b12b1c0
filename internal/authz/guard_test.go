package authz_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sindigo/sindigo/internal/authz"
	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/mocks"
	"github.com/sindigo/sindigo/internal/model"
)

func membershipRow(userID, orgID uuid.UUID, role model.Role, unitID *uuid.UUID) *model.Membership {
	return &model.Membership{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		UnitID:         unitID,
		Role:           role,
		IsActive:       true,
	}
}

func TestRequireOrgAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()
	principal := authz.Principal{UserID: userID}

	t.Run("active membership passes", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleCondoStaff, nil), nil)

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, orgID)

		assert.NoError(t, gctx.Err())
		assert.Equal(t, model.RoleCondoStaff, gctx.Role())
		assert.Equal(t, orgID, gctx.OrganizationID)
	})

	t.Run("no membership is forbidden", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(nil, domain.ErrMembershipNotFound)

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, orgID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrForbidden)
	})

	t.Run("platform admin passes without a membership lookup", func(t *testing.T) {
		// No EXPECT on the store: any call would fail the test.
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		admin := authz.Principal{UserID: uuid.New(), IsPlatformAdmin: true}

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), admin, orgID)

		assert.NoError(t, gctx.Err())
		assert.Nil(t, gctx.Membership)
		assert.Equal(t, model.RolePlatformAdmin, gctx.Role())
	})

	t.Run("storage fault stays unavailable, not forbidden", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(nil, fmt.Errorf("%w: connection refused", domain.ErrUnavailable))

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, orgID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrUnavailable)
		assert.NotErrorIs(t, gctx.Err(), domain.ErrForbidden)
	})

	t.Run("nil organization id is invalid", func(t *testing.T) {
		guard := authz.NewGuard(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, uuid.Nil)

		assert.ErrorIs(t, gctx.Err(), domain.ErrInvalidArgument)
	})

	t.Run("empty allow-list admits any member role", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleResident, nil), nil)

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, orgID)
		assert.NoError(t, gctx.Err())

		// An explicit zero-role refinement is a no-op, not a deny.
		assert.NoError(t, gctx.RequireRole().Err())
	})

	t.Run("role allow-list applies on top of membership", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleResident, nil), nil)

		guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireOrgAccess(context.Background(), principal, orgID, model.RoleCondoAdmin)

		assert.ErrorIs(t, gctx.Err(), domain.ErrForbidden)
	})
}

func TestRequireRoleChaining(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()
	principal := authz.Principal{UserID: userID}

	memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
	memberships.EXPECT().
		ActiveByUserAndOrg(gomock.Any(), userID, orgID).
		Return(nil, domain.ErrMembershipNotFound)

	guard := authz.NewGuard(memberships, mocks.NewMockScopeResolver(ctrl))
	failed := guard.RequireOrgAccess(context.Background(), principal, orgID)
	firstErr := failed.Err()
	assert.ErrorIs(t, firstErr, domain.ErrForbidden)

	// Refining a failed context keeps the first failure, even when the
	// refinement would pass on its own.
	refined := failed.RequireRole(model.RoleCondoAdmin).RequireRole(model.RoleResident)
	assert.Equal(t, firstErr, refined.Err())
	assert.Equal(t, model.Role(""), refined.Role())
}

func TestRequireUnitAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	orgID := uuid.New()
	unitID := uuid.New()
	otherUnit := uuid.New()
	principal := authz.Principal{UserID: userID}

	t.Run("resident pinned to the unit passes", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleResident, &unitID), nil)
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().UnitOrganization(gomock.Any(), unitID).Return(orgID, nil)

		guard := authz.NewGuard(memberships, scopes)
		gctx := guard.RequireUnitAccess(context.Background(), principal, unitID)

		assert.NoError(t, gctx.Err())
	})

	t.Run("resident of another unit is forbidden", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleResident, &otherUnit), nil)
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().UnitOrganization(gomock.Any(), unitID).Return(orgID, nil)

		guard := authz.NewGuard(memberships, scopes)
		gctx := guard.RequireUnitAccess(context.Background(), principal, unitID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrForbidden)
	})

	t.Run("staff passes on organization access alone", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleCondoStaff, nil), nil)
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().UnitOrganization(gomock.Any(), unitID).Return(orgID, nil)

		guard := authz.NewGuard(memberships, scopes)
		gctx := guard.RequireUnitAccess(context.Background(), principal, unitID)

		assert.NoError(t, gctx.Err())
	})

	t.Run("unknown unit surfaces not found", func(t *testing.T) {
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().UnitOrganization(gomock.Any(), unitID).Return(uuid.Nil, domain.ErrUnitNotFound)

		guard := authz.NewGuard(mocks.NewMockMembershipRepositoryIface(ctrl), scopes)
		gctx := guard.RequireUnitAccess(context.Background(), principal, unitID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrUnitNotFound)
	})
}

func TestRequireEntityAccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	personID := uuid.New()
	orgID := uuid.New()
	unitID := uuid.New()
	otherUnit := uuid.New()
	entityID := uuid.New()
	principal := authz.Principal{UserID: userID, PersonID: &personID}

	expectResidentMembership := func(unit *uuid.UUID) *mocks.MockMembershipRepositoryIface {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleResident, unit), nil)
		return memberships
	}

	t.Run("resident owning the record passes", func(t *testing.T) {
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().
			EntityScope(gomock.Any(), authz.KindTicket, entityID).
			Return(&authz.EntityScope{OrganizationID: orgID, OwnerPersonID: &personID}, nil)

		guard := authz.NewGuard(expectResidentMembership(&unitID), scopes)
		gctx := guard.RequireEntityAccess(context.Background(), principal, "chamado", entityID)

		assert.NoError(t, gctx.Err())
	})

	t.Run("resident of the record's unit passes", func(t *testing.T) {
		stranger := uuid.New()
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().
			EntityScope(gomock.Any(), authz.KindUnitCharge, entityID).
			Return(&authz.EntityScope{OrganizationID: orgID, UnitID: &unitID, OwnerPersonID: &stranger}, nil)

		guard := authz.NewGuard(expectResidentMembership(&unitID), scopes)
		gctx := guard.RequireEntityAccess(context.Background(), principal, "cobranca_unidade", entityID)

		assert.NoError(t, gctx.Err())
	})

	t.Run("resident with neither owner nor unit match is forbidden", func(t *testing.T) {
		stranger := uuid.New()
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().
			EntityScope(gomock.Any(), authz.KindUnitCharge, entityID).
			Return(&authz.EntityScope{OrganizationID: orgID, UnitID: &otherUnit, OwnerPersonID: &stranger}, nil)

		guard := authz.NewGuard(expectResidentMembership(&unitID), scopes)
		gctx := guard.RequireEntityAccess(context.Background(), principal, "cobranca_unidade", entityID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrForbidden)
	})

	t.Run("kind token spellings are equivalent", func(t *testing.T) {
		for _, token := range []string{"cobranca_unidade", "cobranca-unidade", "Cobranca Unidade"} {
			scopes := mocks.NewMockScopeResolver(ctrl)
			scopes.EXPECT().
				EntityScope(gomock.Any(), authz.KindUnitCharge, entityID).
				Return(&authz.EntityScope{OrganizationID: orgID, UnitID: &unitID}, nil)

			guard := authz.NewGuard(expectResidentMembership(&unitID), scopes)
			gctx := guard.RequireEntityAccess(context.Background(), principal, token, entityID)

			assert.NoError(t, gctx.Err(), "token %q", token)
		}
	})

	t.Run("unknown kind is invalid, never a silent allow", func(t *testing.T) {
		guard := authz.NewGuard(mocks.NewMockMembershipRepositoryIface(ctrl), mocks.NewMockScopeResolver(ctrl))
		gctx := guard.RequireEntityAccess(context.Background(), principal, "documento", entityID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrInvalidArgument)
	})

	t.Run("missing record surfaces not found", func(t *testing.T) {
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().
			EntityScope(gomock.Any(), authz.KindTicket, entityID).
			Return(nil, domain.ErrNotFound)

		guard := authz.NewGuard(mocks.NewMockMembershipRepositoryIface(ctrl), scopes)
		gctx := guard.RequireEntityAccess(context.Background(), principal, "chamado", entityID)

		assert.ErrorIs(t, gctx.Err(), domain.ErrNotFound)
	})

	t.Run("staff passes regardless of ownership", func(t *testing.T) {
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)
		memberships.EXPECT().
			ActiveByUserAndOrg(gomock.Any(), userID, orgID).
			Return(membershipRow(userID, orgID, model.RoleCondoStaff, nil), nil)
		stranger := uuid.New()
		scopes := mocks.NewMockScopeResolver(ctrl)
		scopes.EXPECT().
			EntityScope(gomock.Any(), authz.KindTicket, entityID).
			Return(&authz.EntityScope{OrganizationID: orgID, UnitID: &otherUnit, OwnerPersonID: &stranger}, nil)

		guard := authz.NewGuard(memberships, scopes)
		gctx := guard.RequireEntityAccess(context.Background(), principal, "chamado", entityID)

		assert.NoError(t, gctx.Err())
	})
}
