package models

import (
	"time"
)

// Tenant is an isolated organization. Contracts, evaluations and
// notification settings are always scoped to one tenant; nothing in this
// service ever reads across tenant boundaries.
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Active    bool      `gorm:"default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Contracts           []Contract           `gorm:"foreignKey:TenantID" json:"contracts,omitempty"`
	NotificationSetting *NotificationSetting `gorm:"foreignKey:TenantID" json:"notification_setting,omitempty"`
}

// TableName specifies the table name for Tenant
func (Tenant) TableName() string {
	return "tenants"
}
