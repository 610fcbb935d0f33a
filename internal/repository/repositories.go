package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Tenant          TenantRepository
	Contract        ContractRepository
	Evaluation      EvaluationRepository
	Settings        SettingsRepository
	NotificationLog NotificationLogRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Tenant:          NewTenantRepository(db),
		Contract:        NewContractRepository(db),
		Evaluation:      NewEvaluationRepository(db),
		Settings:        NewSettingsRepository(db),
		NotificationLog: NewNotificationLogRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
	}
}

// Offset returns the SQL offset for the current page
func (q *ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}
