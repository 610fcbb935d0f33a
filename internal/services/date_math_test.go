package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	t.Run("Expires today", func(t *testing.T) {
		target := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, 0, DaysUntil(now, target))
	})

	t.Run("Already expired", func(t *testing.T) {
		target := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
		assert.Equal(t, -1, DaysUntil(now, target))
	})

	t.Run("Window boundary", func(t *testing.T) {
		target := time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 30, DaysUntil(now, target))
	})

	t.Run("Just past the window", func(t *testing.T) {
		target := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 31, DaysUntil(now, target))
	})
}

// The count must not depend on the time of day either instant carries.
func TestDaysUntilTimeOfDayIndependence(t *testing.T) {
	target := time.Date(2026, 3, 15, 16, 45, 0, 0, time.UTC)

	earlyRun := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
	lateRun := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysUntil(earlyRun, target))
	assert.Equal(t, DaysUntil(earlyRun, target), DaysUntil(lateRun, target))
}

func TestDaysUntilDeterministic(t *testing.T) {
	now := time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)
	target := time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC)

	first := DaysUntil(now, target)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DaysUntil(now, target))
	}
	assert.Equal(t, 14, first)
}
