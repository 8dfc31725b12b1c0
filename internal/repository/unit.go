// internal/repository/unit.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sindigo/sindigo/internal/domain"
	"github.com/sindigo/sindigo/internal/model"
)

type UnitRepositoryIface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error)
	OrganizationID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnitNotFound
		}
		return nil, fmt.Errorf("%w: finding unit: %v", domain.ErrUnavailable, err)
	}
	return &unit, nil
}

// OrganizationID resolves the owning organization of a unit without loading
// the full row.
func (r *UnitRepository) OrganizationID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var orgID uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.Unit{}).
		Where("id = ?", id).
		Pluck("organization_id", &orgID)
	if result.Error != nil {
		return uuid.Nil, fmt.Errorf("%w: resolving unit organization: %v", domain.ErrUnavailable, result.Error)
	}
	if result.RowsAffected == 0 || orgID == uuid.Nil {
		return uuid.Nil, domain.ErrUnitNotFound
	}
	return orgID, nil
}
