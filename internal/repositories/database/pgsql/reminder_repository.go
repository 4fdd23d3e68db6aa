package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/daybook-app/daybook_backend/internal/models"
	"github.com/daybook-app/daybook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxReminderRepository struct {
	BaseRepository
}

// newPgxReminderRepository creates a new repository for reminders.
func newPgxReminderRepository(pool *pgxpool.Pool) portsrepo.ReminderRepositoryFacade {
	return &PgxReminderRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReminderRepository implements portsrepo.ReminderRepositoryFacade
var _ portsrepo.ReminderRepositoryFacade = (*PgxReminderRepository)(nil)

const reminderColumns = `reminder_id, user_id, type, timezone, hour, minute, enabled, next_run_at, last_sent_at, created_at`

func scanReminder(row pgx.Row) (*models.Reminder, error) {
	var m models.Reminder
	err := row.Scan(&m.ReminderID, &m.UserID, &m.Type, &m.Timezone, &m.Hour, &m.Minute, &m.Enabled, &m.NextRunAt, &m.LastSentAt, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertReminder inserts or fully updates a reminder row. A user has at
// most one reminder per type.
func (r *PgxReminderRepository) UpsertReminder(ctx context.Context, reminder domain.Reminder) (*domain.Reminder, error) {
	query := `
		INSERT INTO reminders (reminder_id, user_id, type, timezone, hour, minute, enabled, next_run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, type) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			hour = EXCLUDED.hour,
			minute = EXCLUDED.minute,
			enabled = EXCLUDED.enabled,
			next_run_at = EXCLUDED.next_run_at
		RETURNING ` + reminderColumns + `;`
	m, err := scanReminder(r.Pool.QueryRow(ctx, query,
		reminder.ReminderID, reminder.UserID, reminder.Type, reminder.Timezone,
		reminder.Hour, reminder.Minute, reminder.Enabled, reminder.NextRunAt, reminder.CreatedAt,
	))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert reminder", err)
	}
	saved := mapping.ToDomainReminder(*m)
	return &saved, nil
}

// ListReminders retrieves a user's reminders newest-first.
func (r *PgxReminderRepository) ListReminders(ctx context.Context, userID string) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list reminders", err)
	}
	defer rows.Close()
	return r.collectReminders(rows)
}

// FindReminderByID retrieves a reminder regardless of owner.
func (r *PgxReminderRepository) FindReminderByID(ctx context.Context, reminderID string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE reminder_id = $1;`
	m, err := scanReminder(r.Pool.QueryRow(ctx, query, reminderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find reminder "+reminderID, err)
	}
	reminder := mapping.ToDomainReminder(*m)
	return &reminder, nil
}

// DisableReminder disables an owned reminder and clears next_run_at.
func (r *PgxReminderRepository) DisableReminder(ctx context.Context, reminderID, userID string) (bool, error) {
	query := `UPDATE reminders SET enabled = FALSE, next_run_at = NULL WHERE reminder_id = $1 AND user_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, reminderID, userID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to disable reminder "+reminderID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// DueReminders retrieves enabled reminders whose next_run_at is at or
// before now, oldest first, capped at limit.
func (r *PgxReminderRepository) DueReminders(ctx context.Context, now time.Time, limit int) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE enabled = TRUE AND next_run_at IS NOT NULL AND next_run_at <= $1
		ORDER BY next_run_at ASC
		LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query due reminders", err)
	}
	defer rows.Close()
	return r.collectReminders(rows)
}

// MarkLastSent stamps last_sent_at after a successful delivery.
func (r *PgxReminderRepository) MarkLastSent(ctx context.Context, reminderID string, at time.Time) error {
	query := `UPDATE reminders SET last_sent_at = $2 WHERE reminder_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, reminderID, at); err != nil {
		return apperrors.NewAppError(500, "failed to mark reminder sent", err)
	}
	return nil
}

// SetNextRun stores the next firing instant (nil disarms the reminder).
func (r *PgxReminderRepository) SetNextRun(ctx context.Context, reminderID string, nextRunAt *time.Time) error {
	query := `UPDATE reminders SET next_run_at = $2 WHERE reminder_id = $1;`
	if _, err := r.Pool.Exec(ctx, query, reminderID, nextRunAt); err != nil {
		return apperrors.NewAppError(500, "failed to set reminder next run", err)
	}
	return nil
}

func (r *PgxReminderRepository) collectReminders(rows pgx.Rows) ([]domain.Reminder, error) {
	var reminders []models.Reminder
	for rows.Next() {
		var m models.Reminder
		if err := rows.Scan(&m.ReminderID, &m.UserID, &m.Type, &m.Timezone, &m.Hour, &m.Minute, &m.Enabled, &m.NextRunAt, &m.LastSentAt, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan reminder row", err)
		}
		reminders = append(reminders, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate reminder rows", err)
	}
	return mapping.ToDomainReminderSlice(reminders), nil
}
