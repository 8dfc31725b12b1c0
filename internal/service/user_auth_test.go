package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/sindigo/sindigo/internal/auth"
	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/mocks"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/service"
)

func TestUserLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	hasher := auth.NewPasswordHasher()
	hashed, err := hasher.Hash("correct_password")
	assert.NoError(t, err)

	userID := uuid.New()
	personID := uuid.New()
	orgID := uuid.New()
	unitID := uuid.New()
	testUser := &model.User{
		ID:           userID,
		Email:        "morador@example.com",
		FirstName:    "Ana",
		Status:       model.StatusActive,
		PasswordHash: hashed,
		PersonID:     &personID,
	}

	tokenManager := auth.NewTokenManager("test_secret", time.Hour)

	t.Run("successful login stamps the advisory snapshot", func(t *testing.T) {
		users := mocks.NewMockUserRepositoryIface(ctrl)
		memberships := mocks.NewMockMembershipRepositoryIface(ctrl)

		users.EXPECT().
			FindByEmail(gomock.Any(), testUser.Email).
			Return(testUser, nil)
		memberships.EXPECT().
			ActiveByUser(gomock.Any(), userID).
			Return([]*model.Membership{
				{UserID: userID, OrganizationID: orgID, UnitID: &unitID, Role: model.RoleResident, IsActive: true},
			}, nil)

		svc := service.NewUserService(users, memberships, hasher, tokenManager)
		out, err := svc.Login(context.Background(), service.LoginInput{
			Email:    testUser.Email,
			Password: "correct_password",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, out.Token)

		claims, err := tokenManager.Validate(out.Token)
		assert.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, personID.String(), claims.PersonID)
		assert.False(t, claims.PlatformAdmin)
		assert.Len(t, claims.Memberships, 1)
		assert.Equal(t, orgID.String(), claims.Memberships[0].OrganizationID)
		assert.Equal(t, unitID.String(), claims.Memberships[0].UnitID)
		assert.Equal(t, string(model.RoleResident), claims.Memberships[0].Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := mocks.NewMockUserRepositoryIface(ctrl)
		users.EXPECT().
			FindByEmail(gomock.Any(), testUser.Email).
			Return(testUser, nil)

		svc := service.NewUserService(users, mocks.NewMockMembershipRepositoryIface(ctrl), hasher, tokenManager)
		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    testUser.Email,
			Password: "wrong_password",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email does not reveal existence", func(t *testing.T) {
		users := mocks.NewMockUserRepositoryIface(ctrl)
		users.EXPECT().
			FindByEmail(gomock.Any(), "nobody@example.com").
			Return(nil, domain.ErrUserNotFound)

		svc := service.NewUserService(users, mocks.NewMockMembershipRepositoryIface(ctrl), hasher, tokenManager)
		_, err := svc.Login(context.Background(), service.LoginInput{
			Email:    "nobody@example.com",
			Password: "anything",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, domain.ErrUserNotFound)
	})
}
