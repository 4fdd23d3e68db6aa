package services

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
)

// analyticsService computes read-side aggregates over entry data.
type analyticsService struct {
	analyticsRepo portsrepo.AnalyticsRepositoryFacade
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analyticsRepo portsrepo.AnalyticsRepositoryFacade) portssvc.AnalyticsSvcFacade {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
	}
}

// Ensure analyticsService implements the portssvc.AnalyticsSvcFacade interface
var _ portssvc.AnalyticsSvcFacade = (*analyticsService)(nil)

// GetSummary computes per-metric averages and per-habit completion rates
// over an inclusive date range.
func (s *analyticsService) GetSummary(ctx context.Context, userID string, from, to time.Time) (*domain.AnalyticsSummary, error) {
	if to.Before(from) {
		return nil, apperrors.NewBadRequestError("range end precedes range start")
	}
	metrics, err := s.analyticsRepo.MetricAverages(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	habits, err := s.analyticsRepo.HabitCompletionRates(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &domain.AnalyticsSummary{
		From:    from,
		To:      to,
		Metrics: metrics,
		Habits:  habits,
	}, nil
}

// GetCorrelation computes the Pearson correlation between two metric keys,
// paired by entry date.
func (s *analyticsService) GetCorrelation(ctx context.Context, userID string, keyA, keyB string, from, to time.Time) (*domain.MetricCorrelation, error) {
	if keyA == keyB {
		return nil, apperrors.NewBadRequestError("correlation requires two distinct metric keys")
	}
	if to.Before(from) {
		return nil, apperrors.NewBadRequestError("range end precedes range start")
	}
	return s.analyticsRepo.MetricCorrelation(ctx, userID, keyA, keyB, from, to)
}

// ExportCSV streams the user's entries and metrics as CSV. One row per
// (entry, metric) pair; entries without metrics emit a single row with
// empty metric columns.
func (s *analyticsService) ExportCSV(ctx context.Context, userID string, from, to time.Time, w io.Writer) error {
	rows, err := s.analyticsRepo.EntriesForExport(ctx, userID, from, to)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"entry_date", "journal_text", "metric_key", "value_num", "value_text"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.EntryDate.Format(domain.EntryDateLayout),
			derefOrEmpty(row.JournalText),
			derefOrEmpty(row.MetricKey),
			"",
			derefOrEmpty(row.ValueText),
		}
		if row.ValueNum != nil {
			record[3] = row.ValueNum.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
