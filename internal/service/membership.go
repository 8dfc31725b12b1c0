// internal/service/membership.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/email"
	"github.com/sindigo/sindigo/internal/model"
	"github.com/sindigo/sindigo/internal/repository"
)

// MembershipService administers the membership lifecycle: assignment on
// invite, soft deactivation on removal. It never deletes rows; history is
// what lets deactivated memberships stay invisible to the guard without
// losing the audit trail.
type MembershipService struct {
	memberships repository.MembershipRepositoryIface
	users       repository.UserRepositoryIface
	orgs        repository.OrganizationRepositoryIface
	units       repository.UnitRepositoryIface
	mailer      *email.Service
	baseURL     string
}

func NewMembershipService(
	memberships repository.MembershipRepositoryIface,
	users repository.UserRepositoryIface,
	orgs repository.OrganizationRepositoryIface,
	units repository.UnitRepositoryIface,
	mailer *email.Service,
	baseURL string,
) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		users:       users,
		orgs:        orgs,
		units:       units,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

type AssignInput struct {
	OrganizationID uuid.UUID  `json:"organizacaoId"`
	UserID         uuid.UUID  `json:"usuarioId" validate:"required"`
	Role           model.Role `json:"papel" validate:"required"`
	UnitID         *uuid.UUID `json:"unidadeId,omitempty"`
	InvitedByID    *uuid.UUID `json:"-"`
}

// Assign creates an active membership and notifies the user. Residents must
// be pinned to a unit; no other role may be.
func (s *MembershipService) Assign(ctx context.Context, input AssignInput) (*model.Membership, error) {
	if !input.Role.Valid() || input.Role == model.RolePlatformAdmin {
		return nil, fmt.Errorf("%w: role %q cannot be assigned through a membership", domain.ErrInvalidArgument, input.Role)
	}
	if input.Role == model.RoleResident && input.UnitID == nil {
		return nil, fmt.Errorf("%w: resident memberships require a unit", domain.ErrInvalidArgument)
	}
	if input.Role != model.RoleResident && input.UnitID != nil {
		return nil, fmt.Errorf("%w: only resident memberships carry a unit", domain.ErrInvalidArgument)
	}

	if input.UnitID != nil {
		unitOrg, err := s.units.OrganizationID(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		if unitOrg != input.OrganizationID {
			return nil, fmt.Errorf("%w: unit %s does not belong to organization %s",
				domain.ErrInvalidArgument, input.UnitID, input.OrganizationID)
		}
	}

	user, err := s.users.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.FindByID(ctx, input.OrganizationID)
	if err != nil {
		return nil, err
	}

	membership := &model.Membership{
		UserID:         input.UserID,
		OrganizationID: input.OrganizationID,
		UnitID:         input.UnitID,
		Role:           input.Role,
		IsActive:       true,
		InvitedByID:    input.InvitedByID,
	}
	if err := s.memberships.Create(ctx, membership); err != nil {
		return nil, err
	}

	s.notifyAssigned(user, org, input.Role)

	return membership, nil
}

// notifyAssigned sends the invitation email. Delivery failure does not roll
// back the membership; the assignment is the source of truth.
func (s *MembershipService) notifyAssigned(user *model.User, org *model.Organization, role model.Role) {
	if s.mailer == nil {
		return
	}
	err := s.mailer.SendEmail(email.EmailData{
		To:           user.Email,
		Subject:      fmt.Sprintf("Acesso liberado: %s", org.Name),
		TemplateName: "membership_invite",
		TemplateData: map[string]string{
			"FirstName":        user.FirstName,
			"OrganizationName": org.Name,
			"Role":             string(role),
			"BaseURL":          s.baseURL,
		},
	})
	if err != nil {
		slog.Warn("failed to send membership invite email", "error", err, "user_id", user.ID)
	}
}

// Deactivate soft-removes a membership inside the given organization.
// Memberships of other organizations are out of reach regardless of the
// caller's role there.
func (s *MembershipService) Deactivate(ctx context.Context, orgID, membershipID uuid.UUID) error {
	return s.memberships.Deactivate(ctx, orgID, membershipID)
}

// ListByOrganization returns the active memberships of an organization.
func (s *MembershipService) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error) {
	return s.memberships.FindByOrganization(ctx, orgID)
}
