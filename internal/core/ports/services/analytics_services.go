package services

import (
	"context"
	"io"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// AnalyticsSvcFacade defines the read-side aggregates over entry data.
type AnalyticsSvcFacade interface {
	// GetSummary computes per-metric averages and per-habit completion
	// rates over an inclusive date range.
	GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.AnalyticsSummary, error)

	// GetCorrelation computes the Pearson correlation between two metric
	// keys, paired by entry date.
	GetCorrelation(ctx context.Context, userID string, keyA, keyB string, from, to time.Time) (*domain.MetricCorrelation, error)

	// ExportCSV streams the user's entries and metrics as CSV.
	ExportCSV(ctx context.Context, userID string, from, to time.Time, w io.Writer) error
}
