package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/hrdash/pkwt-notifier/internal/repository"
	"gorm.io/gorm"
)

// Mock TenantRepository
type mockTenantRepo struct {
	tenants       []models.Tenant
	findAllErr    error
	findAllCalled bool
}

func (m *mockTenantRepo) FindByID(ctx context.Context, id uint) (*models.Tenant, error) {
	for i := range m.tenants {
		if m.tenants[i].ID == id {
			return &m.tenants[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTenantRepo) FindAllActive(ctx context.Context) ([]models.Tenant, error) {
	m.findAllCalled = true
	if m.findAllErr != nil {
		return nil, m.findAllErr
	}
	return m.tenants, nil
}

// Mock ContractRepository
type mockContractRepo struct {
	byTenant map[uint][]models.Contract
	err      error
}

func (m *mockContractRepo) FindByID(ctx context.Context, id uint) (*models.Contract, error) {
	for _, contracts := range m.byTenant {
		for i := range contracts {
			if contracts[i].ID == id {
				return &contracts[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContractRepo) FindByTenant(ctx context.Context, tenantID uint) ([]models.Contract, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.byTenant[tenantID], nil
}

// Mock EvaluationRepository
type mockEvaluationRepo struct {
	completed map[string]bool
	errFor    map[string]error
}

func evalKey(tenantID, contractID uint, cycle int) string {
	return fmt.Sprintf("%d/%d/%d", tenantID, contractID, cycle)
}

func (m *mockEvaluationRepo) FindByContractCycle(ctx context.Context, tenantID, contractID uint, cycle int) ([]models.EvaluationRecord, error) {
	return nil, nil
}

func (m *mockEvaluationRepo) HasCompleted(ctx context.Context, tenantID, contractID uint, cycle int) (bool, error) {
	key := evalKey(tenantID, contractID, cycle)
	if err := m.errFor[key]; err != nil {
		return false, err
	}
	return m.completed[key], nil
}

// Mock SettingsRepository
type mockSettingsRepo struct {
	sender    *models.SenderSetting
	senderErr error
	byTenant  map[uint]*models.NotificationSetting
	tenantErr error
}

func (m *mockSettingsRepo) GetSender(ctx context.Context) (*models.SenderSetting, error) {
	if m.senderErr != nil {
		return nil, m.senderErr
	}
	if m.sender == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.sender, nil
}

func (m *mockSettingsRepo) GetByTenant(ctx context.Context, tenantID uint) (*models.NotificationSetting, error) {
	if m.tenantErr != nil {
		return nil, m.tenantErr
	}
	setting, ok := m.byTenant[tenantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return setting, nil
}

// Mock NotificationLogRepository (thread-safe: Run writes concurrently)
type mockLogRepo struct {
	mu      sync.Mutex
	entries []models.NotificationLog
}

func (m *mockLogRepo) Create(ctx context.Context, entry *models.NotificationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockLogRepo) FindByTenant(ctx context.Context, tenantID uint, query *repository.ListQuery) ([]models.NotificationLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.NotificationLog
	for _, e := range m.entries {
		if e.TenantID != nil && *e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockLogRepo) byStatus(status string) []models.NotificationLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.NotificationLog
	for _, e := range m.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

// Fake MailSender (thread-safe)
type fakeMailSender struct {
	mu     sync.Mutex
	sent   []*OutboundEmail
	failTo map[string]error
}

func (f *fakeMailSender) Send(ctx context.Context, msg *OutboundEmail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(msg.To) > 0 {
		if err, ok := f.failTo[msg.To[0]]; ok {
			return err
		}
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailSender) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
