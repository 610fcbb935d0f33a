package repository

import (
	"context"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"gorm.io/gorm"
)

// EvaluationRepository defines the interface for evaluation-record access
type EvaluationRepository interface {
	// FindByContractCycle returns all evaluation records for one contract's
	// specific renewal cycle within the tenant.
	FindByContractCycle(ctx context.Context, tenantID, contractID uint, cycle int) ([]models.EvaluationRecord, error)
	// HasCompleted reports whether at least one non-draft evaluation exists
	// for the contract's given cycle.
	HasCompleted(ctx context.Context, tenantID, contractID uint, cycle int) (bool, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) FindByContractCycle(ctx context.Context, tenantID, contractID uint, cycle int) ([]models.EvaluationRecord, error) {
	var records []models.EvaluationRecord
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND contract_id = ? AND cycle = ?", tenantID, contractID, cycle).
		Find(&records).Error
	return records, err
}

func (r *evaluationRepository) HasCompleted(ctx context.Context, tenantID, contractID uint, cycle int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.EvaluationRecord{}).
		Where("tenant_id = ? AND contract_id = ? AND cycle = ? AND status IN ?",
			tenantID, contractID, cycle,
			[]string{models.EvaluationStatusAwaitingSignature, models.EvaluationStatusFinalized}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
