// internal/service/user_auth.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/auth"
	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/repository"
)

// UserService handles login and token issuance. The issued claims carry the
// platform-admin flag and an advisory snapshot of the user's active
// memberships; both are stamped here, at issuance time, and never
// recomputed by the principal resolver.
type UserService struct {
	users        repository.UserRepositoryIface
	memberships  repository.MembershipRepositoryIface
	hasher       *auth.PasswordHasher
	tokenManager *auth.TokenManager
}

func NewUserService(
	users repository.UserRepositoryIface,
	memberships repository.MembershipRepositoryIface,
	hasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *UserService {
	return &UserService{
		users:        users,
		memberships:  memberships,
		hasher:       hasher,
		tokenManager: tokenManager,
	}
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !verified {
		return nil, domain.ErrInvalidCredentials
	}

	snapshot, err := s.membershipSnapshot(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	personID := ""
	if user.PersonID != nil {
		personID = user.PersonID.String()
	}

	token, err := s.tokenManager.Generate(user.ID.String(), personID, user.IsPlatformAdmin, snapshot)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

// membershipSnapshot builds the advisory claim list from the active
// memberships at issuance time.
func (s *UserService) membershipSnapshot(ctx context.Context, userID uuid.UUID) ([]auth.MembershipClaim, error) {
	memberships, err := s.memberships.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading memberships for token: %w", err)
	}

	snapshot := make([]auth.MembershipClaim, 0, len(memberships))
	for _, m := range memberships {
		claim := auth.MembershipClaim{
			OrganizationID: m.OrganizationID.String(),
			Role:           string(m.Role),
		}
		if m.UnitID != nil {
			claim.UnitID = m.UnitID.String()
		}
		snapshot = append(snapshot, claim)
	}
	return snapshot, nil
}
