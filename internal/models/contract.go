package models

import (
	"time"
)

// Contract is a fixed-term employment agreement (PKWT). Contracts are
// created and renewed by tenant-side management; this service only reads
// them. Cycle is the ordinal renewal number ("PKWT ke-N") and increments on
// each renewal — it is the sole key used to match evaluations.
type Contract struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TenantID     uint      `gorm:"not null;index" json:"tenant_id"`
	EmployeeName string    `gorm:"size:255;not null" json:"employee_name"`
	Position     string    `gorm:"size:255" json:"position"`
	Department   string    `gorm:"size:255" json:"department"`
	Supervisor   string    `gorm:"size:255" json:"supervisor"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null;index" json:"end_date"`
	Cycle        int       `gorm:"not null;default:1" json:"cycle"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Tenant      Tenant             `gorm:"foreignKey:TenantID" json:"-"`
	Evaluations []EvaluationRecord `gorm:"foreignKey:ContractID" json:"evaluations,omitempty"`
}

// TableName specifies the table name for Contract
func (Contract) TableName() string {
	return "contracts"
}
