package repository

import (
	"context"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"gorm.io/gorm"
)

// NotificationLogRepository defines the interface for the append-only
// notification log. There is deliberately no Update or Delete.
type NotificationLogRepository interface {
	Create(ctx context.Context, entry *models.NotificationLog) error
	FindByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.NotificationLog, int64, error)
}

type notificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Create(ctx context.Context, entry *models.NotificationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *notificationLogRepository) FindByTenant(ctx context.Context, tenantID uint, query *ListQuery) ([]models.NotificationLog, int64, error) {
	var entries []models.NotificationLog
	var total int64

	db := r.db.WithContext(ctx).
		Model(&models.NotificationLog{}).
		Where("tenant_id = ?", tenantID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("sent_at DESC").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&entries).Error
	return entries, total, err
}
