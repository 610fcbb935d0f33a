package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hrdash/pkwt-notifier/internal/config"
	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/hrdash/pkwt-notifier/internal/repository"
	"github.com/hrdash/pkwt-notifier/internal/statemachine"
	"github.com/hrdash/pkwt-notifier/pkg/logger"
	"gorm.io/gorm"
)

// RunSummary describes one full notification sweep
type RunSummary struct {
	RunID           uuid.UUID `json:"run_id"`
	EmailsSent      int       `json:"emails_sent"`
	TenantsNotified int       `json:"tenants_notified"`
	TenantsSkipped  int       `json:"tenants_skipped"`
	TenantsFailed   int       `json:"tenants_failed"`
}

// NotifiedEmployee is one entry of an on-demand run result, ordered most
// urgent first.
type NotifiedEmployee struct {
	Name     string `json:"nama"`
	DaysLeft int    `json:"hariExpired"`
}

// TenantRunResult describes an on-demand run for a single tenant
type TenantRunResult struct {
	RunID            uuid.UUID
	TenantID         uint
	EmailsSent       int
	TotalUnevaluated int
	Employees        []NotifiedEmployee
}

// tenant pass outcomes
const (
	outcomeNotified = iota
	outcomeEmpty
	outcomeSkipped
	outcomeFailed
)

type tenantOutcome struct {
	status     int
	emailsSent int
}

// NotifierService coordinates the scan → filter → aggregate → dispatch →
// log pipeline across all tenants. Failure in one tenant never aborts the
// run; the sender transport is built per run from stored credentials.
type NotifierService struct {
	tenantRepo    repository.TenantRepository
	settingsSvc   *SettingsService
	scannerSvc    *ScannerService
	digestSvc     *DigestService
	auditSvc      *AuditService
	newMailSender MailSenderFactory
	senderName    string
	perContract   bool
	workers       int
}

func NewNotifierService(
	tenantRepo repository.TenantRepository,
	settingsSvc *SettingsService,
	scannerSvc *ScannerService,
	digestSvc *DigestService,
	auditSvc *AuditService,
	newMailSender MailSenderFactory,
	cfg *config.Config,
) *NotifierService {
	return &NotifierService{
		tenantRepo:    tenantRepo,
		settingsSvc:   settingsSvc,
		scannerSvc:    scannerSvc,
		digestSvc:     digestSvc,
		auditSvc:      auditSvc,
		newMailSender: newMailSender,
		senderName:    cfg.SenderName,
		perContract:   cfg.PerContractEmails,
		workers:       cfg.WorkerCount,
	}
}

// Run executes one full sweep over all active tenants. Sender settings are
// resolved exactly once; if they are absent or incomplete the run aborts
// with a single critical_error log entry and no tenant is processed.
// Tenants are processed with bounded parallelism; they share no mutable
// state and each worker's counters are merged at the end.
func (s *NotifierService) Run(ctx context.Context, now time.Time) (*RunSummary, error) {
	summary := &RunSummary{RunID: uuid.New()}

	sender, err := s.settingsSvc.ResolveSender(ctx)
	if err != nil {
		logger.Error("Notification run aborted: sender settings unavailable", "run_id", summary.RunID, "error", err)
		if logErr := s.auditSvc.LogCritical(ctx, summary.RunID, err); logErr != nil {
			logger.Error("Failed to write critical log entry", "error", logErr)
		}
		return summary, err
	}

	tenants, err := s.tenantRepo.FindAllActive(ctx)
	if err != nil {
		err = fmt.Errorf("load tenants: %w", err)
		logger.Error("Notification run aborted", "run_id", summary.RunID, "error", err)
		if logErr := s.auditSvc.LogCritical(ctx, summary.RunID, err); logErr != nil {
			logger.Error("Failed to write critical log entry", "error", logErr)
		}
		return summary, err
	}

	mailSender := s.newMailSender(sender.APICredential)
	from := fmt.Sprintf("%s <%s>", s.senderName, sender.SenderEmail)

	workers := s.workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tenants) {
		workers = len(tenants)
	}

	jobs := make(chan models.Tenant)
	results := make(chan tenantOutcome, len(tenants))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for tenant := range jobs {
				results <- s.processTenant(ctx, summary.RunID, tenant, from, "", mailSender, now)
			}
		}()
	}

	for _, tenant := range tenants {
		jobs <- tenant
	}
	close(jobs)
	wg.Wait()
	close(results)

	for outcome := range results {
		switch outcome.status {
		case outcomeNotified:
			summary.TenantsNotified++
			summary.EmailsSent += outcome.emailsSent
		case outcomeSkipped:
			summary.TenantsSkipped++
		case outcomeFailed:
			summary.TenantsFailed++
		}
	}

	logger.Info("Notification run completed",
		"run_id", summary.RunID,
		"emails_sent", summary.EmailsSent,
		"tenants_notified", summary.TenantsNotified,
		"tenants_skipped", summary.TenantsSkipped,
		"tenants_failed", summary.TenantsFailed,
	)
	return summary, nil
}

// processTenant runs the pipeline for one tenant. Every error is absorbed
// here: logged, written to the notification log where an attempt was made,
// and reported as an outcome so the run continues with the next tenant.
func (s *NotifierService) processTenant(ctx context.Context, runID uuid.UUID, tenant models.Tenant, from, cc string, mailSender MailSender, now time.Time) tenantOutcome {
	pipeline := statemachine.NewTenantPipelineFSM(tenant.ID)

	fail := func(recipient string, names []string, cause error) tenantOutcome {
		logger.Error("Tenant pass failed", "run_id", runID, "tenant_id", tenant.ID, "error", cause)
		if logErr := s.auditSvc.LogError(ctx, runID, tenant.ID, recipient, names, cause); logErr != nil {
			logger.Error("Failed to write error log entry", "run_id", runID, "tenant_id", tenant.ID, "error", logErr)
		}
		_ = pipeline.Advance(ctx, "fail")
		return tenantOutcome{status: outcomeFailed}
	}

	settings, err := s.settingsSvc.ResolveTenant(ctx, tenant.ID)
	if err != nil {
		if errors.Is(err, ErrRecipientNotConfigured) {
			// Unconfigured tenants are skipped without noise or log entries.
			logger.Debug("Tenant skipped: no recipient configured", "run_id", runID, "tenant_id", tenant.ID)
			return tenantOutcome{status: outcomeSkipped}
		}
		return fail("", nil, err)
	}
	if err := pipeline.Advance(ctx, "resolve_settings"); err != nil {
		return fail(settings.RecipientEmail, nil, err)
	}

	hits, warnings, err := s.scannerSvc.Scan(ctx, tenant.ID, now)
	if err != nil {
		return fail(settings.RecipientEmail, nil, err)
	}
	for _, w := range warnings {
		logger.Warn("Contract excluded: evaluation status undetermined",
			"run_id", runID, "tenant_id", tenant.ID, "contract_id", w.ContractID, "error", w.Err)
	}
	if err := pipeline.Advance(ctx, "scan"); err != nil {
		return fail(settings.RecipientEmail, nil, err)
	}

	if len(hits) == 0 {
		_ = pipeline.Advance(ctx, "finish_empty")
		return tenantOutcome{status: outcomeEmpty}
	}

	var digests []*Digest
	if s.perContract {
		digests, err = s.digestSvc.BuildPerContract(hits, now)
	} else {
		var digest *Digest
		digest, err = s.digestSvc.BuildDigest(hits, now)
		if err == nil {
			digests = []*Digest{digest}
		}
	}
	if err != nil {
		return fail(settings.RecipientEmail, nil, err)
	}
	if err := pipeline.Advance(ctx, "aggregate"); err != nil {
		return fail(settings.RecipientEmail, nil, err)
	}

	sent := 0
	for _, digest := range digests {
		if s.dispatch(ctx, runID, tenant.ID, settings.RecipientEmail, cc, from, digest, mailSender) {
			sent++
		}
	}
	_ = pipeline.Advance(ctx, "dispatch")
	_ = pipeline.Advance(ctx, "log")
	_ = pipeline.Advance(ctx, "finish")

	if sent == 0 {
		return tenantOutcome{status: outcomeFailed}
	}
	return tenantOutcome{status: outcomeNotified, emailsSent: sent}
}

// dispatch makes exactly one delivery attempt and writes exactly one log
// entry for it. Delivery failures stay inside the tenant boundary: they are
// recorded, never retried, never re-raised.
func (s *NotifierService) dispatch(ctx context.Context, runID uuid.UUID, tenantID uint, recipient, cc, from string, digest *Digest, mailSender MailSender) bool {
	msg := &OutboundEmail{
		From:    from,
		To:      []string{recipient},
		Subject: digest.Subject,
		HTML:    digest.HTML,
	}
	if cc != "" {
		msg.CC = []string{cc}
	}

	if err := mailSender.Send(ctx, msg); err != nil {
		logger.Error("Email delivery failed", "run_id", runID, "tenant_id", tenantID, "recipient", recipient, "error", err)
		if logErr := s.auditSvc.LogError(ctx, runID, tenantID, recipient, digest.EmployeeNames, err); logErr != nil {
			logger.Error("Failed to write error log entry", "run_id", runID, "tenant_id", tenantID, "error", logErr)
		}
		return false
	}

	logger.Info("Email sent", "run_id", runID, "tenant_id", tenantID, "recipient", recipient, "contracts", digest.ContractCount)
	if logErr := s.auditSvc.LogSuccess(ctx, runID, tenantID, recipient, digest.EmployeeNames); logErr != nil {
		logger.Error("Failed to write success log entry", "run_id", runID, "tenant_id", tenantID, "error", logErr)
	}
	return true
}

// RunForTenant executes the pipeline for a single tenant on demand. The
// configuration-missing cases return typed errors without writing log
// entries or sending anything; a delivery failure is logged and returned.
func (s *NotifierService) RunForTenant(ctx context.Context, tenantID uint, now time.Time, cc string) (*TenantRunResult, error) {
	sender, err := s.settingsSvc.ResolveSender(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.tenantRepo.FindByID(ctx, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("load tenant %d: %w", tenantID, err)
	}

	settings, err := s.settingsSvc.ResolveTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	result := &TenantRunResult{RunID: uuid.New(), TenantID: tenantID}

	hits, warnings, err := s.scannerSvc.Scan(ctx, tenantID, now)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("Contract excluded: evaluation status undetermined",
			"run_id", result.RunID, "tenant_id", tenantID, "contract_id", w.ContractID, "error", w.Err)
	}

	sorted := sortEntries(hits)
	result.TotalUnevaluated = len(sorted)
	for _, e := range sorted {
		result.Employees = append(result.Employees, NotifiedEmployee{
			Name:     e.Contract.EmployeeName,
			DaysLeft: e.DaysLeft,
		})
	}

	if len(sorted) == 0 {
		return result, nil
	}

	var digests []*Digest
	if s.perContract {
		digests, err = s.digestSvc.BuildPerContract(sorted, now)
	} else {
		var digest *Digest
		digest, err = s.digestSvc.BuildDigest(sorted, now)
		if err == nil {
			digests = []*Digest{digest}
		}
	}
	if err != nil {
		return nil, err
	}

	mailSender := s.newMailSender(sender.APICredential)
	from := fmt.Sprintf("%s <%s>", s.senderName, sender.SenderEmail)

	for _, digest := range digests {
		if !s.dispatch(ctx, result.RunID, tenantID, settings.RecipientEmail, cc, from, digest, mailSender) {
			return nil, fmt.Errorf("delivery to %s failed", settings.RecipientEmail)
		}
		result.EmailsSent++
	}

	return result, nil
}
