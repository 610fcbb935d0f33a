package services

import (
	"context"
	"fmt"

	"github.com/hrdash/pkwt-notifier/internal/repository"
)

// EvaluationService answers whether a contract's current renewal cycle
// already has a completed evaluation on record.
type EvaluationService struct {
	repo repository.EvaluationRepository
}

func NewEvaluationService(repo repository.EvaluationRepository) *EvaluationService {
	return &EvaluationService{repo: repo}
}

// IsEvaluated reports whether at least one non-draft evaluation exists for
// exactly this contract and cycle. Evaluations from a prior cycle never
// cover a later renewal. A failed read surfaces as ErrEvaluationLookup so
// the caller can exclude the contract instead of treating it as
// unevaluated.
func (s *EvaluationService) IsEvaluated(ctx context.Context, tenantID, contractID uint, cycle int) (bool, error) {
	evaluated, err := s.repo.HasCompleted(ctx, tenantID, contractID, cycle)
	if err != nil {
		return false, fmt.Errorf("%w: tenant %d contract %d cycle %d: %v",
			ErrEvaluationLookup, tenantID, contractID, cycle, err)
	}
	return evaluated, nil
}
