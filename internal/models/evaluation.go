package models

import (
	"time"
)

// EvaluationRecord is a recorded assessment of one contract's specific
// renewal cycle, produced by an external evaluation workflow. A cycle counts
// as evaluated once a record for that exact cycle leaves draft status;
// records from earlier cycles never cover a later renewal.
type EvaluationRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TenantID   uint      `gorm:"not null;index" json:"tenant_id"`
	ContractID uint      `gorm:"not null;index" json:"contract_id"`
	Cycle      int       `gorm:"not null" json:"cycle"`
	Status     string    `gorm:"size:30;not null;default:draft" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	Contract Contract `gorm:"foreignKey:ContractID" json:"-"`
}

// TableName specifies the table name for EvaluationRecord
func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}

// Evaluation status constants. "belum TTD" (awaiting signature) and
// "selesai" (finalized) both count as completed; drafts do not.
const (
	EvaluationStatusDraft             = "draft"
	EvaluationStatusAwaitingSignature = "awaiting_signature"
	EvaluationStatusFinalized         = "finalized"
)

// IsCompleted returns true if the evaluation has left draft status
func (e *EvaluationRecord) IsCompleted() bool {
	return e.Status == EvaluationStatusAwaitingSignature || e.Status == EvaluationStatusFinalized
}
