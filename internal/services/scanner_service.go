package services

import (
	"context"
	"fmt"
	"time"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/hrdash/pkwt-notifier/internal/repository"
)

// Notification window: contracts expiring within this many days (inclusive,
// counting from zero) are eligible.
const NotificationWindowDays = 30

// ExpiringContract is one scan hit: a contract inside the notification
// window whose current cycle has no completed evaluation.
type ExpiringContract struct {
	Contract models.Contract
	DaysLeft int
}

// ScanWarning reports a contract that had to be excluded because its
// evaluation status could not be determined.
type ScanWarning struct {
	ContractID uint
	Err        error
}

// ScannerService finds a tenant's contracts that are about to expire and
// still need an evaluation.
type ScannerService struct {
	contractRepo  repository.ContractRepository
	evaluationSvc *EvaluationService
}

func NewScannerService(contractRepo repository.ContractRepository, evaluationSvc *EvaluationService) *ScannerService {
	return &ScannerService{
		contractRepo:  contractRepo,
		evaluationSvc: evaluationSvc,
	}
}

// Scan loads all of the tenant's contracts and admits those with
// 0 <= daysLeft <= 30 and no completed evaluation for their current cycle.
// The result is unordered; the aggregator owns ordering. Contracts whose
// evaluation lookup fails are excluded and reported as warnings rather than
// aborting the scan.
func (s *ScannerService) Scan(ctx context.Context, tenantID uint, now time.Time) ([]ExpiringContract, []ScanWarning, error) {
	contracts, err := s.contractRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("load contracts for tenant %d: %w", tenantID, err)
	}

	var hits []ExpiringContract
	var warnings []ScanWarning

	for i := range contracts {
		contract := &contracts[i]
		daysLeft := DaysUntil(now, contract.EndDate)
		if daysLeft < 0 || daysLeft > NotificationWindowDays {
			continue
		}

		evaluated, err := s.evaluationSvc.IsEvaluated(ctx, tenantID, contract.ID, contract.Cycle)
		if err != nil {
			warnings = append(warnings, ScanWarning{ContractID: contract.ID, Err: err})
			continue
		}
		if evaluated {
			continue
		}

		hits = append(hits, ExpiringContract{Contract: *contract, DaysLeft: daysLeft})
	}

	return hits, warnings, nil
}
