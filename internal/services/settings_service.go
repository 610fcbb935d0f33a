package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/hrdash/pkwt-notifier/internal/repository"
	"gorm.io/gorm"
)

// DefaultReminderOffsets is the documented default window-offset table used
// when a tenant has none configured. Informational: the sweep always uses
// the inclusive 0-30 day window.
const DefaultReminderOffsets = "30,14,7,3,1"

// ResolvedTenantSettings is a tenant's notification settings with all
// defaults applied.
type ResolvedTenantSettings struct {
	TenantID        uint
	RecipientEmail  string
	ReminderOffsets string
}

// SettingsService resolves the global sender identity and per-tenant
// recipient settings from the store, applying documented defaults.
type SettingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// ResolveSender returns the singleton sender settings. An absent or
// incomplete row yields ErrSenderNotConfigured.
func (s *SettingsService) ResolveSender(ctx context.Context) (*models.SenderSetting, error) {
	setting, err := s.repo.GetSender(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSenderNotConfigured
		}
		return nil, fmt.Errorf("load sender settings: %w", err)
	}
	if !setting.IsComplete() {
		return nil, ErrSenderNotConfigured
	}
	return setting, nil
}

// ResolveTenant returns the tenant's settings with defaults applied. A
// missing row or empty recipient yields ErrRecipientNotConfigured.
func (s *SettingsService) ResolveTenant(ctx context.Context, tenantID uint) (*ResolvedTenantSettings, error) {
	setting, err := s.repo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotConfigured
		}
		return nil, fmt.Errorf("load settings for tenant %d: %w", tenantID, err)
	}
	return applyDefaults(setting)
}

// applyDefaults is the explicit merge of a stored settings record over the
// default table. Pure so the precedence rules stay testable.
func applyDefaults(setting *models.NotificationSetting) (*ResolvedTenantSettings, error) {
	if setting.RecipientEmail == "" {
		return nil, ErrRecipientNotConfigured
	}

	resolved := &ResolvedTenantSettings{
		TenantID:        setting.TenantID,
		RecipientEmail:  setting.RecipientEmail,
		ReminderOffsets: setting.ReminderOffsets,
	}
	if resolved.ReminderOffsets == "" {
		resolved.ReminderOffsets = DefaultReminderOffsets
	}
	return resolved, nil
}
