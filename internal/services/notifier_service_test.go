package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hrdash/pkwt-notifier/internal/config"
	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifierFixture struct {
	tenants   *mockTenantRepo
	contracts *mockContractRepo
	evals     *mockEvaluationRepo
	settings  *mockSettingsRepo
	logs      *mockLogRepo
	mail      *fakeMailSender
	svc       *NotifierService
}

func newNotifierFixture(cfg *config.Config) *notifierFixture {
	f := &notifierFixture{
		tenants:   &mockTenantRepo{},
		contracts: &mockContractRepo{byTenant: map[uint][]models.Contract{}},
		evals:     &mockEvaluationRepo{},
		settings: &mockSettingsRepo{
			sender:   &models.SenderSetting{SenderEmail: "noreply@hrdash.id", APICredential: "re_test_key"},
			byTenant: map[uint]*models.NotificationSetting{},
		},
		logs: &mockLogRepo{},
		mail: &fakeMailSender{},
	}
	if cfg == nil {
		cfg = &config.Config{SenderName: "HR Dashboard", WorkerCount: 2}
	}
	f.svc = NewNotifierService(
		f.tenants,
		NewSettingsService(f.settings),
		NewScannerService(f.contracts, NewEvaluationService(f.evals)),
		NewDigestService(),
		NewAuditService(f.logs),
		func(apiCredential string) MailSender { return f.mail },
		cfg,
	)
	return f
}

// One tenant's delivery failure must not stop the sweep: the remaining
// tenants are still processed and every attempt leaves its own log entry.
func TestRunTenantIsolation(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	f := newNotifierFixture(nil)

	f.tenants.tenants = []models.Tenant{
		{ID: 1, Name: "Acme", Active: true},
		{ID: 2, Name: "Globex", Active: true},
		{ID: 3, Name: "Initech", Active: true},
		{ID: 4, Name: "Umbrella", Active: true},
	}
	f.settings.byTenant = map[uint]*models.NotificationSetting{
		1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
		2: {TenantID: 2, RecipientEmail: "hr@globex.co.id"},
		// tenant 3 has no settings row
		4: {TenantID: 4, RecipientEmail: "hr@umbrella.co.id"},
	}
	f.contracts.byTenant = map[uint][]models.Contract{
		1: {contractEnding(100, 1, "Andi", 1, now.AddDate(0, 0, 5))},
		2: {contractEnding(200, 2, "Budi", 1, now.AddDate(0, 0, 12))},
		// tenant 4 has nothing inside the window
		4: {contractEnding(400, 4, "Citra", 1, now.AddDate(0, 0, 60))},
	}
	f.mail.failTo = map[string]error{"hr@acme.co.id": errors.New("resend: 429 too many requests")}

	summary, err := f.svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.EmailsSent)
	assert.Equal(t, 1, summary.TenantsNotified)
	assert.Equal(t, 1, summary.TenantsSkipped)
	assert.Equal(t, 1, summary.TenantsFailed)

	// One success entry (tenant 2), one error entry (tenant 1), nothing for
	// the skipped and empty tenants.
	successes := f.logs.byStatus(models.LogStatusSuccess)
	require.Len(t, successes, 1)
	require.NotNil(t, successes[0].TenantID)
	assert.Equal(t, uint(2), *successes[0].TenantID)
	assert.Equal(t, "Budi", successes[0].ContractNames)
	assert.Equal(t, summary.RunID, successes[0].RunID)

	failures := f.logs.byStatus(models.LogStatusError)
	require.Len(t, failures, 1)
	require.NotNil(t, failures[0].TenantID)
	assert.Equal(t, uint(1), *failures[0].TenantID)
	assert.Contains(t, failures[0].Error, "429")

	assert.Empty(t, f.logs.byStatus(models.LogStatusCriticalError))
	assert.Equal(t, 1, f.mail.sentCount())
}

// Missing sender settings abort the run before any tenant is touched, with
// exactly one critical_error entry.
func TestRunAbortsWithoutSender(t *testing.T) {
	f := newNotifierFixture(nil)
	f.settings.sender = nil
	f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}

	summary, err := f.svc.Run(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrSenderNotConfigured)

	assert.Equal(t, 0, summary.EmailsSent)
	assert.False(t, f.tenants.findAllCalled)
	assert.Equal(t, 0, f.mail.sentCount())

	criticals := f.logs.byStatus(models.LogStatusCriticalError)
	require.Len(t, criticals, 1)
	assert.Nil(t, criticals[0].TenantID)
	assert.Equal(t, summary.RunID, criticals[0].RunID)
}

func TestRunIncompleteSenderAborts(t *testing.T) {
	f := newNotifierFixture(nil)
	f.settings.sender = &models.SenderSetting{SenderEmail: "noreply@hrdash.id"} // no credential

	_, err := f.svc.Run(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrSenderNotConfigured)
	require.Len(t, f.logs.byStatus(models.LogStatusCriticalError), 1)
}

// Per-contract mode sends one email per scan hit for the same recipient.
func TestRunPerContractMode(t *testing.T) {
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	f := newNotifierFixture(&config.Config{SenderName: "HR Dashboard", WorkerCount: 2, PerContractEmails: true})

	f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}
	f.settings.byTenant = map[uint]*models.NotificationSetting{
		1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
	}
	f.contracts.byTenant = map[uint][]models.Contract{
		1: {
			contractEnding(100, 1, "Andi", 1, now.AddDate(0, 0, 5)),
			contractEnding(101, 1, "Budi", 2, now.AddDate(0, 0, 20)),
		},
	}

	summary, err := f.svc.Run(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EmailsSent)
	assert.Equal(t, 1, summary.TenantsNotified)
	assert.Len(t, f.logs.byStatus(models.LogStatusSuccess), 2)
}

func TestRunForTenant(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("Unevaluated contract inside the window is reported and sent", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}
		f.settings.byTenant = map[uint]*models.NotificationSetting{
			1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
		}
		f.contracts.byTenant = map[uint][]models.Contract{
			1: {
				contractEnding(100, 1, "Andi", 1, now.AddDate(0, 0, 5)),
				contractEnding(101, 1, "Budi", 2, now.AddDate(0, 0, 40)),
			},
		}

		result, err := f.svc.RunForTenant(context.Background(), 1, now, "")
		require.NoError(t, err)

		assert.Equal(t, 1, result.EmailsSent)
		assert.Equal(t, 1, result.TotalUnevaluated)
		require.Len(t, result.Employees, 1)
		assert.Equal(t, "Andi", result.Employees[0].Name)
		assert.Equal(t, 5, result.Employees[0].DaysLeft)

		successes := f.logs.byStatus(models.LogStatusSuccess)
		require.Len(t, successes, 1)
		assert.Equal(t, "Andi", successes[0].ContractNames)
	})

	t.Run("Empty result sends nothing and writes nothing", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}
		f.settings.byTenant = map[uint]*models.NotificationSetting{
			1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
		}

		result, err := f.svc.RunForTenant(context.Background(), 1, now, "")
		require.NoError(t, err)

		assert.Equal(t, 0, result.EmailsSent)
		assert.Equal(t, 0, result.TotalUnevaluated)
		assert.Equal(t, 0, f.mail.sentCount())
		assert.Empty(t, f.logs.entries)
	})

	t.Run("Missing sender returns typed error without log entries", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.settings.sender = nil

		_, err := f.svc.RunForTenant(context.Background(), 1, now, "")
		assert.ErrorIs(t, err, ErrSenderNotConfigured)
		assert.Empty(t, f.logs.entries)
		assert.Equal(t, 0, f.mail.sentCount())
	})

	t.Run("Unknown tenant", func(t *testing.T) {
		f := newNotifierFixture(nil)

		_, err := f.svc.RunForTenant(context.Background(), 99, now, "")
		assert.ErrorIs(t, err, ErrTenantNotFound)
		assert.Empty(t, f.logs.entries)
	})

	t.Run("Missing recipient returns typed error without log entries", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}

		_, err := f.svc.RunForTenant(context.Background(), 1, now, "")
		assert.ErrorIs(t, err, ErrRecipientNotConfigured)
		assert.Empty(t, f.logs.entries)
	})

	t.Run("Delivery failure is logged and returned", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}
		f.settings.byTenant = map[uint]*models.NotificationSetting{
			1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
		}
		f.contracts.byTenant = map[uint][]models.Contract{
			1: {contractEnding(100, 1, "Andi", 1, now.AddDate(0, 0, 5))},
		}
		f.mail.failTo = map[string]error{"hr@acme.co.id": errors.New("resend: 500")}

		_, err := f.svc.RunForTenant(context.Background(), 1, now, "")
		require.Error(t, err)
		require.Len(t, f.logs.byStatus(models.LogStatusError), 1)
		assert.Empty(t, f.logs.byStatus(models.LogStatusSuccess))
	})

	t.Run("CC is carried on the outbound message", func(t *testing.T) {
		f := newNotifierFixture(nil)
		f.tenants.tenants = []models.Tenant{{ID: 1, Name: "Acme", Active: true}}
		f.settings.byTenant = map[uint]*models.NotificationSetting{
			1: {TenantID: 1, RecipientEmail: "hr@acme.co.id"},
		}
		f.contracts.byTenant = map[uint][]models.Contract{
			1: {contractEnding(100, 1, "Andi", 1, now.AddDate(0, 0, 5))},
		}

		_, err := f.svc.RunForTenant(context.Background(), 1, now, "manager@acme.co.id")
		require.NoError(t, err)
		require.Equal(t, 1, f.mail.sentCount())
		assert.Equal(t, []string{"manager@acme.co.id"}, f.mail.sent[0].CC)
		assert.Equal(t, []string{"hr@acme.co.id"}, f.mail.sent[0].To)
		assert.Equal(t, "HR Dashboard <noreply@hrdash.id>", f.mail.sent[0].From)
	})
}
