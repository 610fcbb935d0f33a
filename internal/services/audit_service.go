package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/hrdash/pkwt-notifier/internal/repository"
)

// AuditService writes append-only notification log entries. One entry per
// dispatch attempt, plus one per run-level critical failure.
type AuditService struct {
	repo repository.NotificationLogRepository
}

func NewAuditService(repo repository.NotificationLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// LogSuccess records a delivered message
func (s *AuditService) LogSuccess(ctx context.Context, runID uuid.UUID, tenantID uint, recipient string, names []string) error {
	entry := &models.NotificationLog{
		RunID:          runID,
		TenantID:       &tenantID,
		RecipientEmail: recipient,
		ContractCount:  len(names),
		ContractNames:  strings.Join(names, ", "),
		Status:         models.LogStatusSuccess,
	}
	return s.repo.Create(ctx, entry)
}

// LogError records a failed tenant pass or delivery attempt
func (s *AuditService) LogError(ctx context.Context, runID uuid.UUID, tenantID uint, recipient string, names []string, cause error) error {
	entry := &models.NotificationLog{
		RunID:          runID,
		TenantID:       &tenantID,
		RecipientEmail: recipient,
		ContractCount:  len(names),
		ContractNames:  strings.Join(names, ", "),
		Status:         models.LogStatusError,
		Error:          cause.Error(),
	}
	return s.repo.Create(ctx, entry)
}

// LogCritical records a run-level failure that prevented any tenant from
// being processed. No tenant is attributed.
func (s *AuditService) LogCritical(ctx context.Context, runID uuid.UUID, cause error) error {
	entry := &models.NotificationLog{
		RunID:  runID,
		Status: models.LogStatusCriticalError,
		Error:  cause.Error(),
	}
	return s.repo.Create(ctx, entry)
}

// List returns a tenant's notification log entries, newest first
func (s *AuditService) List(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.NotificationLog, int64, error) {
	return s.repo.FindByTenant(ctx, tenantID, query)
}
