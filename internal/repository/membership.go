// internal/repository/membership.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
)

type MembershipRepositoryIface interface {
	ActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error)
	ActiveByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)
	Create(ctx context.Context, m *model.Membership) error
	Deactivate(ctx context.Context, orgID, id uuid.UUID) error
	FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error)
}

// MembershipRepository is the storage-backed membership store. It is the
// single source of truth for authorization decisions: inactive rows never
// leave this layer, and storage faults surface as ErrUnavailable so the
// guard fails closed instead of reading an outage as "no access".
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// ActiveByUser returns all active memberships for a user across every
// organization.
func (r *MembershipRepository) ActiveByUser(ctx context.Context, userID uuid.UUID) ([]*model.Membership, error) {
	var memberships []*model.Membership
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&memberships)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: finding active memberships: %v", domain.ErrUnavailable, result.Error)
	}
	return memberships, nil
}

// ActiveByUserAndOrg returns the single active membership a user holds in an
// organization. More than one active row is ambiguous authorization data and
// is reported as ErrUnavailable, never resolved by picking one.
func (r *MembershipRepository) ActiveByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	var memberships []*model.Membership
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND is_active = ?", userID, orgID, true).
		Limit(2).
		Find(&memberships)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: finding membership: %v", domain.ErrUnavailable, result.Error)
	}
	switch len(memberships) {
	case 0:
		return nil, domain.ErrMembershipNotFound
	case 1:
		return memberships[0], nil
	default:
		return nil, fmt.Errorf("%w: ambiguous membership data for user %s in organization %s",
			domain.ErrUnavailable, userID, orgID)
	}
}

func (r *MembershipRepository) Create(ctx context.Context, m *model.Membership) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Membership{}).
			Where("user_id = ? AND organization_id = ? AND is_active = ?", m.UserID, m.OrganizationID, true).
			Count(&count).Error; err != nil {
			return fmt.Errorf("checking existing membership: %w", err)
		}
		if count > 0 {
			return domain.ErrMembershipExists
		}

		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Deactivate soft-removes a membership, preserving history. The organization
// filter pins the write to the tenant the caller was authorized for; a
// membership id from another organization matches zero rows and reads as
// not found.
func (r *MembershipRepository) Deactivate(ctx context.Context, orgID, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.Membership{}).
		Where("id = ? AND organization_id = ? AND is_active = ?", id, orgID, true).
		Updates(map[string]interface{}{"is_active": false, "deactivated_at": now})
	if result.Error != nil {
		return fmt.Errorf("deactivating membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

func (r *MembershipRepository) FindByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Membership, error) {
	var memberships []*model.Membership
	result := r.db.WithContext(ctx).
		Where("organization_id = ? AND is_active = ?", orgID, true).
		Find(&memberships)
	if result.Error != nil {
		return nil, fmt.Errorf("finding organization memberships: %w", result.Error)
	}
	return memberships, nil
}
