package pgsql

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAnalyticsRepository struct {
	BaseRepository
}

// newPgxAnalyticsRepository creates the read-side aggregate queries over
// entry data.
func newPgxAnalyticsRepository(pool *pgxpool.Pool) portsrepo.AnalyticsRepositoryFacade {
	return &PgxAnalyticsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAnalyticsRepository implements portsrepo.AnalyticsRepositoryFacade
var _ portsrepo.AnalyticsRepositoryFacade = (*PgxAnalyticsRepository)(nil)

// MetricAverages computes count and average per metric key over the user's
// entries in [from, to]. Text-only metrics report a NULL average.
func (r *PgxAnalyticsRepository) MetricAverages(ctx context.Context, userID string, from, to time.Time) ([]domain.MetricAverage, error) {
	query := `
		SELECT m.key, COUNT(*), AVG(m.value_num)
		FROM entry_metrics m
		JOIN entries e ON e.entry_id = m.entry_id
		WHERE e.user_id = $1 AND e.entry_date BETWEEN $2 AND $3
		GROUP BY m.key
		ORDER BY m.key;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query metric averages", err)
	}
	defer rows.Close()

	var averages []domain.MetricAverage
	for rows.Next() {
		var a domain.MetricAverage
		if err := rows.Scan(&a.Key, &a.Count, &a.Average); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan metric average", err)
		}
		averages = append(averages, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate metric averages", err)
	}
	return averages, nil
}

// HabitCompletionRates computes marked/completed day counts per habit over
// the user's entries in [from, to].
func (r *PgxAnalyticsRepository) HabitCompletionRates(ctx context.Context, userID string, from, to time.Time) ([]domain.HabitCompletionRate, error) {
	query := `
		SELECT h.habit_id, COUNT(*), COUNT(*) FILTER (WHERE h.completed)
		FROM entry_habits h
		JOIN entries e ON e.entry_id = h.entry_id
		WHERE e.user_id = $1 AND e.entry_date BETWEEN $2 AND $3
		GROUP BY h.habit_id
		ORDER BY h.habit_id;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query habit completion", err)
	}
	defer rows.Close()

	var rates []domain.HabitCompletionRate
	for rows.Next() {
		var h domain.HabitCompletionRate
		if err := rows.Scan(&h.HabitID, &h.MarkedDays, &h.CompletedDays); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan habit completion", err)
		}
		if h.MarkedDays > 0 {
			h.CompletionRate = float64(h.CompletedDays) / float64(h.MarkedDays)
		}
		rates = append(rates, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate habit completion", err)
	}
	return rates, nil
}

// MetricCorrelation computes the Pearson correlation of two metric keys
// paired by entry date over [from, to]. corr() returns NULL for fewer than
// two samples or zero variance, which maps to a nil coefficient.
func (r *PgxAnalyticsRepository) MetricCorrelation(ctx context.Context, userID, keyA, keyB string, from, to time.Time) (*domain.MetricCorrelation, error) {
	query := `
		SELECT COUNT(*), CORR(a.value_num::float8, b.value_num::float8)
		FROM entries e
		JOIN entry_metrics a ON a.entry_id = e.entry_id AND a.key = $2 AND a.value_num IS NOT NULL
		JOIN entry_metrics b ON b.entry_id = e.entry_id AND b.key = $3 AND b.value_num IS NOT NULL
		WHERE e.user_id = $1 AND e.entry_date BETWEEN $4 AND $5;`
	result := domain.MetricCorrelation{KeyA: keyA, KeyB: keyB}
	err := r.Pool.QueryRow(ctx, query, userID, keyA, keyB, from, to).Scan(&result.SampleCount, &result.Coefficient)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute metric correlation", err)
	}
	return &result, nil
}

// EntriesForExport retrieves entries joined with their metrics for CSV
// export, ordered by entry date ascending.
func (r *PgxAnalyticsRepository) EntriesForExport(ctx context.Context, userID string, from, to time.Time) ([]domain.ExportRow, error) {
	query := `
		SELECT e.entry_date, e.journal_text, m.key, m.value_num, m.value_text
		FROM entries e
		LEFT JOIN entry_metrics m ON m.entry_id = e.entry_id
		WHERE e.user_id = $1 AND e.entry_date BETWEEN $2 AND $3
		ORDER BY e.entry_date ASC, m.key ASC;`
	rows, err := r.Pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query export rows", err)
	}
	defer rows.Close()

	var out []domain.ExportRow
	for rows.Next() {
		var row domain.ExportRow
		if err := rows.Scan(&row.EntryDate, &row.JournalText, &row.MetricKey, &row.ValueNum, &row.ValueText); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan export row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate export rows", err)
	}
	return out, nil
}
