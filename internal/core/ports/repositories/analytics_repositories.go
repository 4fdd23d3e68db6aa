package repositories

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// AnalyticsRepositoryFacade defines the read-side aggregate queries.
type AnalyticsRepositoryFacade interface {
	// MetricAverages computes count and average per metric key over the
	// user's entries in [from, to].
	MetricAverages(ctx context.Context, userID string, from, to time.Time) ([]domain.MetricAverage, error)

	// HabitCompletionRates computes marked/completed day counts per habit
	// over the user's entries in [from, to].
	HabitCompletionRates(ctx context.Context, userID string, from, to time.Time) ([]domain.HabitCompletionRate, error)

	// MetricCorrelation computes the Pearson correlation of two metric keys
	// paired by entry date over [from, to].
	MetricCorrelation(ctx context.Context, userID, keyA, keyB string, from, to time.Time) (*domain.MetricCorrelation, error)

	// EntriesForExport streams entries joined with their metrics for CSV
	// export, ordered by entry date ascending.
	EntriesForExport(ctx context.Context, userID string, from, to time.Time) ([]domain.ExportRow, error)
}
