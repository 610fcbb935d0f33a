package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationLog is an append-only record of one dispatch attempt (or one
// run-level critical failure). Entries are written once and never updated
// or deleted by this service.
type NotificationLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RunID          uuid.UUID `gorm:"type:uuid;index" json:"run_id"`
	TenantID       *uint     `gorm:"index" json:"tenant_id"`
	RecipientEmail string    `gorm:"size:255" json:"recipient_email"`
	ContractCount  int       `json:"contract_count"`
	ContractNames  string    `gorm:"type:text" json:"contract_names"`
	Status         string    `gorm:"size:20;not null;index" json:"status"`
	Error          string    `gorm:"type:text" json:"error"`
	SentAt         time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
}

// TableName specifies the table name for NotificationLog
func (NotificationLog) TableName() string {
	return "notification_logs"
}

// Notification log status constants
const (
	LogStatusSuccess       = "success"
	LogStatusError         = "error"
	LogStatusCriticalError = "critical_error"
)
