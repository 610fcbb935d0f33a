package services

import (
	"github.com/hrdash/pkwt-notifier/internal/config"
	"github.com/hrdash/pkwt-notifier/internal/jobs"
	"github.com/hrdash/pkwt-notifier/internal/repository"
)

// Services holds all service instances
type Services struct {
	Settings   *SettingsService
	Evaluation *EvaluationService
	Scanner    *ScannerService
	Digest     *DigestService
	Audit      *AuditService
	Notifier   *NotifierService
	Export     *ExportService
	Job        *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	settingsSvc := NewSettingsService(repos.Settings)
	evaluationSvc := NewEvaluationService(repos.Evaluation)
	scannerSvc := NewScannerService(repos.Contract, evaluationSvc)
	digestSvc := NewDigestService()
	auditSvc := NewAuditService(repos.NotificationLog)

	notifierSvc := NewNotifierService(
		repos.Tenant,
		settingsSvc,
		scannerSvc,
		digestSvc,
		auditSvc,
		NewResendMailSender,
		cfg,
	)

	return &Services{
		Settings:   settingsSvc,
		Evaluation: evaluationSvc,
		Scanner:    scannerSvc,
		Digest:     digestSvc,
		Audit:      auditSvc,
		Notifier:   notifierSvc,
		Export:     NewExportService(),
		Job:        NewJobService(worker),
	}
}
