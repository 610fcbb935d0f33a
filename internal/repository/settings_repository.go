package repository

import (
	"context"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"gorm.io/gorm"
)

// SettingsRepository defines the interface for notification settings access
type SettingsRepository interface {
	// GetSender returns the singleton sender settings row, or
	// gorm.ErrRecordNotFound when it has never been configured.
	GetSender(ctx context.Context) (*models.SenderSetting, error)
	// GetByTenant returns the tenant's notification settings, or
	// gorm.ErrRecordNotFound when the tenant has none.
	GetByTenant(ctx context.Context, tenantID uint) (*models.NotificationSetting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSender(ctx context.Context) (*models.SenderSetting, error) {
	var setting models.SenderSetting
	err := r.db.WithContext(ctx).Order("id ASC").First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) GetByTenant(ctx context.Context, tenantID uint) (*models.NotificationSetting, error) {
	var setting models.NotificationSetting
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
