// internal/repository/finance.go
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

type FinancialRecordRepositoryIface interface {
	Create(ctx context.Context, rec *model.FinancialRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RecordStatus) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FinancialRecord, error)
	ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*model.FinancialRecord, error)
}

type FinancialRecordRepository struct {
	db *gorm.DB
}

func NewFinancialRecordRepository(db *gorm.DB) *FinancialRecordRepository {
	return &FinancialRecordRepository{db: db}
}

func (r *FinancialRecordRepository) Create(ctx context.Context, rec *model.FinancialRecord) error {
	result := r.db.WithContext(ctx).Create(rec)
	if result.Error != nil {
		return fmt.Errorf("creating financial record: %w", result.Error)
	}
	return nil
}

func (r *FinancialRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.FinancialRecord, error) {
	var rec model.FinancialRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("finding financial record: %w", err)
	}
	return &rec, nil
}

// UpdateStatus moves a record from one status to another. The WHERE clause
// carries the expected source status so concurrent transitions on the same
// record cannot both win.
func (r *FinancialRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to model.RecordStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.FinancialRecord{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return fmt.Errorf("updating record status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *FinancialRecordRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.FinancialRecord, error) {
	var recs []*model.FinancialRecord
	result := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("due_date").
		Find(&recs)
	if result.Error != nil {
		return nil, fmt.Errorf("listing organization records: %w", result.Error)
	}
	return recs, nil
}

func (r *FinancialRecordRepository) ListByUnit(ctx context.Context, unitID uuid.UUID) ([]*model.FinancialRecord, error) {
	var recs []*model.FinancialRecord
	result := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("due_date").
		Find(&recs)
	if result.Error != nil {
		return nil, fmt.Errorf("listing unit records: %w", result.Error)
	}
	return recs, nil
}
