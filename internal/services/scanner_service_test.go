package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hrdash/pkwt-notifier/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(contracts *mockContractRepo, evals *mockEvaluationRepo) *ScannerService {
	return NewScannerService(contracts, NewEvaluationService(evals))
}

func contractEnding(id uint, tenantID uint, name string, cycle int, end time.Time) models.Contract {
	return models.Contract{
		ID:           id,
		TenantID:     tenantID,
		EmployeeName: name,
		Cycle:        cycle,
		StartDate:    end.AddDate(-1, 0, 0),
		EndDate:      end,
	}
}

func TestScanWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	contracts := &mockContractRepo{byTenant: map[uint][]models.Contract{
		1: {
			contractEnding(10, 1, "Expires Today", 1, day(0)),
			contractEnding(11, 1, "Mid Window", 1, day(15)),
			contractEnding(12, 1, "Window Edge", 1, day(30)),
			contractEnding(13, 1, "Past Window", 1, day(31)),
			contractEnding(14, 1, "Already Expired", 1, day(-1)),
		},
	}}
	svc := newTestScanner(contracts, &mockEvaluationRepo{})

	hits, warnings, err := svc.Scan(ctx, 1, now)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, hits, 3)
	admitted := map[uint]int{}
	for _, h := range hits {
		admitted[h.Contract.ID] = h.DaysLeft
	}
	assert.Equal(t, 0, admitted[10])
	assert.Equal(t, 15, admitted[11])
	assert.Equal(t, 30, admitted[12])
	assert.NotContains(t, admitted, uint(13))
	assert.NotContains(t, admitted, uint(14))
}

// A completed evaluation suppresses a contract only when it belongs to the
// contract's current cycle.
func TestScanCycleScoping(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 10)

	contracts := &mockContractRepo{byTenant: map[uint][]models.Contract{
		1: {
			contractEnding(20, 1, "Evaluated This Cycle", 2, end),
			contractEnding(21, 1, "Evaluated Last Cycle", 2, end),
			contractEnding(22, 1, "Never Evaluated", 1, end),
		},
	}}
	evals := &mockEvaluationRepo{completed: map[string]bool{
		evalKey(1, 20, 2): true,
		evalKey(1, 21, 1): true, // stale: cycle 1, contract is on cycle 2
	}}
	svc := newTestScanner(contracts, evals)

	hits, warnings, err := svc.Scan(ctx, 1, now)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	ids := make([]uint, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.Contract.ID)
	}
	assert.NotContains(t, ids, uint(20))
	assert.Contains(t, ids, uint(21))
	assert.Contains(t, ids, uint(22))
}

// A failed evaluation lookup excludes just that contract and surfaces a
// warning; the rest of the scan proceeds.
func TestScanLookupFailureExcludes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := now.AddDate(0, 0, 5)

	contracts := &mockContractRepo{byTenant: map[uint][]models.Contract{
		1: {
			contractEnding(30, 1, "Lookup Fails", 1, end),
			contractEnding(31, 1, "Lookup Works", 1, end),
		},
	}}
	evals := &mockEvaluationRepo{errFor: map[string]error{
		evalKey(1, 30, 1): errors.New("query timeout"),
	}}
	svc := newTestScanner(contracts, evals)

	hits, warnings, err := svc.Scan(ctx, 1, now)
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Equal(t, uint(30), warnings[0].ContractID)
	assert.ErrorIs(t, warnings[0].Err, ErrEvaluationLookup)

	require.Len(t, hits, 1)
	assert.Equal(t, uint(31), hits[0].Contract.ID)
}

func TestScanContractLoadFailure(t *testing.T) {
	svc := newTestScanner(&mockContractRepo{err: errors.New("connection reset")}, &mockEvaluationRepo{})

	_, _, err := svc.Scan(context.Background(), 1, time.Now())
	assert.Error(t, err)
}
