package models

import (
	"time"
)

// NotificationSetting is a tenant's notification preferences. A tenant
// without a row (or without a recipient email) is silently skipped by the
// daily sweep.
type NotificationSetting struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	TenantID       uint   `gorm:"not null;uniqueIndex" json:"tenant_id"`
	RecipientEmail string `gorm:"size:255" json:"recipient_email"`
	// ReminderOffsets is a comma-separated list of day offsets shown in the
	// settings UI. Informational only: the sweep always uses the inclusive
	// 0-30 day window.
	ReminderOffsets string    `gorm:"size:100" json:"reminder_offsets"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for NotificationSetting
func (NotificationSetting) TableName() string {
	return "notification_settings"
}

// SenderSetting is the singleton sender identity used for every outbound
// email. Managed by platform administration; absence aborts the whole run.
type SenderSetting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SenderEmail   string    `gorm:"size:255" json:"sender_email"`
	APICredential string    `gorm:"size:255" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for SenderSetting
func (SenderSetting) TableName() string {
	return "sender_settings"
}

// IsComplete returns true when both sender address and credential are set
func (s *SenderSetting) IsComplete() bool {
	return s.SenderEmail != "" && s.APICredential != ""
}
