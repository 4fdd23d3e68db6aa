package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

func TestNextRun_FiresTodayWhenSlotAhead(t *testing.T) {
	// 20:00 UTC is 21:00 in Berlin (winter); a 21:30 reminder still fires
	// today.
	from := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)
	next := domain.NextRun(21, 30, "Europe/Berlin", from)
	assert.Equal(t, time.Date(2025, 1, 10, 20, 30, 0, 0, time.UTC), next)
}

func TestNextRun_RollsToTomorrowWhenSlotPassed(t *testing.T) {
	from := time.Date(2025, 1, 10, 21, 0, 0, 0, time.UTC)
	next := domain.NextRun(21, 30, "Europe/Berlin", from)
	assert.Equal(t, time.Date(2025, 1, 11, 20, 30, 0, 0, time.UTC), next)
}

func TestNextRun_ExactSlotRollsForward(t *testing.T) {
	from := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	next := domain.NextRun(8, 0, "UTC", from)
	assert.Equal(t, time.Date(2025, 1, 11, 8, 0, 0, 0, time.UTC), next)
}

func TestNextRun_UnknownZoneFallsBackToUTC(t *testing.T) {
	from := time.Date(2025, 1, 10, 7, 0, 0, 0, time.UTC)
	next := domain.NextRun(8, 0, "Not/AZone", from)
	assert.Equal(t, time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC), next)
}

func TestNextRun_HonorsDSTTransition(t *testing.T) {
	// The night Berlin moves to summer time, 21:30 local is 19:30 UTC.
	from := time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)
	next := domain.NextRun(21, 30, "Europe/Berlin", from)
	assert.Equal(t, time.Date(2025, 3, 30, 19, 30, 0, 0, time.UTC), next)
}
