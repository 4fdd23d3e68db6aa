package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/daybook-app/daybook_backend/internal/models"
	"github.com/daybook-app/daybook_backend/internal/utils/mapping"
	"github.com/daybook-app/daybook_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entries, their owned
// metric and habit rows, and sync conflicts.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, user_id, entry_date, template_id, journal_text, created_at, updated_at`

func scanEntry(row pgx.Row) (*models.Entry, error) {
	var m models.Entry
	err := row.Scan(&m.EntryID, &m.UserID, &m.EntryDate, &m.TemplateID, &m.JournalText, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves an entry by id, scoped to the owning user.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID, userID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1 AND user_id = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryID, err)
	}
	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// ListEntries retrieves a user's entries newest-first with an optional date
// range and cursor pagination.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1`
	args := []interface{}{userID}

	if from != nil {
		args = append(args, *from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursorDate, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError("invalid pagination token")
		}
		args = append(args, cursorDate)
		query += ` AND entry_date < $` + strconv.Itoa(len(args))
	}

	// Fetch one extra row to decide whether another page exists.
	args = append(args, limit+1)
	query += ` ORDER BY entry_date DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list entries", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var m models.Entry
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.EntryDate, &m.TemplateID, &m.JournalText, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		t := pagination.EncodeEntryToken(entries[len(entries)-1].EntryDate)
		token = &t
	}
	return entries, token, nil
}

// FindMetricsByEntryID retrieves the current metric set of an entry.
func (r *PgxEntryRepository) FindMetricsByEntryID(ctx context.Context, entryID string) ([]domain.Metric, error) {
	query := `SELECT entry_id, key, value_num, value_text FROM entry_metrics WHERE entry_id = $1 ORDER BY key;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry metrics", err)
	}
	defer rows.Close()

	var metrics []models.EntryMetric
	for rows.Next() {
		var m models.EntryMetric
		if err := rows.Scan(&m.EntryID, &m.Key, &m.ValueNum, &m.ValueText); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan metric row", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate metric rows", err)
	}
	return mapping.ToDomainMetricSlice(metrics), nil
}

// FindHabitMarksByEntryID retrieves the current habit marks of an entry.
func (r *PgxEntryRepository) FindHabitMarksByEntryID(ctx context.Context, entryID string) ([]domain.HabitMark, error) {
	query := `SELECT entry_id, habit_id, completed FROM entry_habits WHERE entry_id = $1 ORDER BY habit_id;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry habits", err)
	}
	defer rows.Close()

	var habits []models.EntryHabit
	for rows.Next() {
		var m models.EntryHabit
		if err := rows.Scan(&m.EntryID, &m.HabitID, &m.Completed); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan habit row", err)
		}
		habits = append(habits, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate habit rows", err)
	}
	return mapping.ToDomainHabitMarkSlice(habits), nil
}

// FindEntryForUpdate loads the entry for (user, entryDate) with a row lock.
// Concurrent upserts for the same logical entry serialize on this lock.
func (r *PgxEntryRepository) FindEntryForUpdate(ctx context.Context, tx pgx.Tx, userID string, entryDate time.Time) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE user_id = $1 AND entry_date = $2 FOR UPDATE;`
	m, err := scanEntry(tx.QueryRow(ctx, query, userID, entryDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock entry for update", err)
	}
	entry := mapping.ToDomainEntry(*m)
	return &entry, nil
}

// InsertEntry inserts a brand-new entry row.
func (r *PgxEntryRepository) InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) (*domain.Entry, error) {
	m := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (entry_id, user_id, entry_date, template_id, journal_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns + `;`
	saved, err := scanEntry(tx.QueryRow(ctx, query,
		m.EntryID, m.UserID, m.EntryDate, m.TemplateID, m.JournalText, m.CreatedAt, m.UpdatedAt,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert entry", err)
	}
	out := mapping.ToDomainEntry(*saved)
	return &out, nil
}

// UpdateEntryContent applies an upsert write to an existing entry. The
// template only fills in a previously unset value; journal text is stored
// exactly as given.
func (r *PgxEntryRepository) UpdateEntryContent(ctx context.Context, tx pgx.Tx, entryID string, templateID *string, journalText *string, updatedAt time.Time) (*domain.Entry, error) {
	query := `
		UPDATE entries
		SET template_id = COALESCE(template_id, $2),
		    journal_text = $3,
		    updated_at = $4
		WHERE entry_id = $1
		RETURNING ` + entryColumns + `;`
	saved, err := scanEntry(tx.QueryRow(ctx, query, entryID, templateID, journalText, updatedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update entry "+entryID, err)
	}
	out := mapping.ToDomainEntry(*saved)
	return &out, nil
}

// UpdateEntryText overwrites the journal text during conflict resolution.
func (r *PgxEntryRepository) UpdateEntryText(ctx context.Context, tx pgx.Tx, entryID, userID string, journalText string, updatedAt time.Time) error {
	query := `UPDATE entries SET journal_text = $3, updated_at = $4 WHERE entry_id = $1 AND user_id = $2;`
	tag, err := tx.Exec(ctx, query, entryID, userID, journalText, updatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry text", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceMetrics deletes the entry's metric set and bulk-inserts the
// supplied one. An empty slice clears all metrics.
func (r *PgxEntryRepository) ReplaceMetrics(ctx context.Context, tx pgx.Tx, entryID string, metrics []domain.Metric) error {
	if _, err := tx.Exec(ctx, `DELETE FROM entry_metrics WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear entry metrics", err)
	}
	if len(metrics) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO entry_metrics (entry_id, key, value_num, value_text) VALUES ($1, $2, $3, $4);`
	for _, m := range metrics {
		batch.Queue(query, entryID, m.Key, m.ValueNum, m.ValueText)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range metrics {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert entry metric", err)
		}
	}
	return nil
}

// ReplaceHabitMarks does the same for habit marks.
func (r *PgxEntryRepository) ReplaceHabitMarks(ctx context.Context, tx pgx.Tx, entryID string, habits []domain.HabitMark) error {
	if _, err := tx.Exec(ctx, `DELETE FROM entry_habits WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear entry habits", err)
	}
	if len(habits) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO entry_habits (entry_id, habit_id, completed) VALUES ($1, $2, $3);`
	for _, h := range habits {
		batch.Queue(query, entryID, h.HabitID, h.Completed)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range habits {
		if _, err := results.Exec(); err != nil {
			return apperrors.NewAppError(500, "failed to insert entry habit", err)
		}
	}
	return nil
}

const conflictColumns = `c.conflict_id, c.entry_id, c.field, c.local_version, c.remote_version, c.status, c.created_at`

// ListUnresolvedConflicts retrieves a user's open conflicts newest-first,
// each joined with its entry's date.
func (r *PgxEntryRepository) ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error) {
	query := `
		SELECT ` + conflictColumns + `, e.entry_date
		FROM conflicts c
		JOIN entries e ON e.entry_id = c.entry_id
		WHERE e.user_id = $1 AND c.status = 'unresolved'
		ORDER BY c.created_at DESC;`
	return r.queryConflicts(ctx, query, userID)
}

// ListUnresolvedConflictsByEntry retrieves the open conflicts of one entry.
func (r *PgxEntryRepository) ListUnresolvedConflictsByEntry(ctx context.Context, entryID, userID string) ([]domain.Conflict, error) {
	query := `
		SELECT ` + conflictColumns + `, e.entry_date
		FROM conflicts c
		JOIN entries e ON e.entry_id = c.entry_id
		WHERE c.entry_id = $1 AND e.user_id = $2 AND c.status = 'unresolved'
		ORDER BY c.created_at DESC;`
	return r.queryConflicts(ctx, query, entryID, userID)
}

func (r *PgxEntryRepository) queryConflicts(ctx context.Context, query string, args ...interface{}) ([]domain.Conflict, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query conflicts", err)
	}
	defer rows.Close()

	var conflicts []models.Conflict
	for rows.Next() {
		var m models.Conflict
		if err := rows.Scan(&m.ConflictID, &m.EntryID, &m.Field, &m.LocalVersion, &m.RemoteVersion, &m.Status, &m.CreatedAt, &m.EntryDate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan conflict row", err)
		}
		conflicts = append(conflicts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate conflict rows", err)
	}
	return mapping.ToDomainConflictSlice(conflicts), nil
}

// InsertConflict records a detected collision and returns the new conflict's id.
func (r *PgxEntryRepository) InsertConflict(ctx context.Context, tx pgx.Tx, conflict domain.Conflict) (string, error) {
	query := `
		INSERT INTO conflicts (conflict_id, entry_id, field, local_version, remote_version, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING conflict_id;`
	var id string
	err := tx.QueryRow(ctx, query,
		conflict.ConflictID, conflict.EntryID, conflict.Field,
		conflict.LocalVersion, conflict.RemoteVersion, string(conflict.Status), conflict.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to insert conflict", err)
	}
	return id, nil
}

// FindConflictForUpdate loads an unresolved conflict with a row lock,
// enforcing ownership through the joined entry. The second return value is
// the entry's current journal text.
func (r *PgxEntryRepository) FindConflictForUpdate(ctx context.Context, tx pgx.Tx, conflictID, userID string) (*domain.Conflict, *string, error) {
	query := `
		SELECT ` + conflictColumns + `, e.entry_date, e.journal_text
		FROM conflicts c
		JOIN entries e ON e.entry_id = c.entry_id
		WHERE c.conflict_id = $1 AND e.user_id = $2 AND c.status = 'unresolved'
		FOR UPDATE OF c, e;`
	var m models.Conflict
	var entryText *string
	err := tx.QueryRow(ctx, query, conflictID, userID).Scan(
		&m.ConflictID, &m.EntryID, &m.Field, &m.LocalVersion, &m.RemoteVersion, &m.Status, &m.CreatedAt, &m.EntryDate, &entryText,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, apperrors.NewAppError(500, "failed to lock conflict for update", err)
	}
	conflict := mapping.ToDomainConflict(m)
	return &conflict, entryText, nil
}

// MarkConflictResolved transitions the conflict to resolved.
func (r *PgxEntryRepository) MarkConflictResolved(ctx context.Context, tx pgx.Tx, conflictID string) error {
	query := `UPDATE conflicts SET status = 'resolved' WHERE conflict_id = $1;`
	tag, err := tx.Exec(ctx, query, conflictID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark conflict resolved", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
