package repository

import (
	"context"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"gorm.io/gorm"
)

// ContractRepository defines the interface for contract data access.
// Contracts are owned by tenant-side management; this service only reads.
type ContractRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Contract, error)
	FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error)
}

type contractRepository struct {
	db *gorm.DB
}

// NewContractRepository creates a new contract repository
func NewContractRepository(db *gorm.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).First(&contract, id).Error
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *contractRepository) FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("end_date ASC").
		Find(&contracts).Error
	return contracts, err
}
