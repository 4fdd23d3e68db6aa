package repositories

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryReader defines read operations for entries and their owned rows.
type EntryReader interface {
	// FindEntryByID retrieves an entry by id, scoped to the owning user.
	// Returns apperrors.ErrNotFound when absent or owned by another user.
	FindEntryByID(ctx context.Context, entryID, userID string) (*domain.Entry, error)

	// ListEntries retrieves a user's entries newest-first with an optional
	// date range and cursor pagination. It returns the entries, a token for
	// the next page, and an error.
	ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// FindMetricsByEntryID retrieves the current metric set of an entry.
	FindMetricsByEntryID(ctx context.Context, entryID string) ([]domain.Metric, error)

	// FindHabitMarksByEntryID retrieves the current habit marks of an entry.
	FindHabitMarksByEntryID(ctx context.Context, entryID string) ([]domain.HabitMark, error)
}

// EntryWriter defines the transaction-scoped write operations the upsert
// coordinator composes. Every method runs against the supplied transaction;
// the caller owns commit and rollback.
type EntryWriter interface {
	// FindEntryForUpdate loads the entry for (user, entryDate) with a row
	// lock, serializing concurrent upserts for the same logical entry.
	// Returns apperrors.ErrNotFound when no entry exists yet.
	FindEntryForUpdate(ctx context.Context, tx pgx.Tx, userID string, entryDate time.Time) (*domain.Entry, error)

	// InsertEntry inserts a brand-new entry row.
	InsertEntry(ctx context.Context, tx pgx.Tx, entry domain.Entry) (*domain.Entry, error)

	// UpdateEntryContent applies an upsert write to an existing entry:
	// journalText is stored as given (the coordinator has already applied
	// the keep-previous fallback), templateID only fills in a previously
	// unset template, updated_at advances to updatedAt.
	UpdateEntryContent(ctx context.Context, tx pgx.Tx, entryID string, templateID *string, journalText *string, updatedAt time.Time) (*domain.Entry, error)

	// UpdateEntryText overwrites the journal text during conflict
	// resolution, scoped to the owning user.
	UpdateEntryText(ctx context.Context, tx pgx.Tx, entryID, userID string, journalText string, updatedAt time.Time) error

	// ReplaceMetrics deletes the entry's metric set and bulk-inserts the
	// supplied one. An empty slice clears all metrics.
	ReplaceMetrics(ctx context.Context, tx pgx.Tx, entryID string, metrics []domain.Metric) error

	// ReplaceHabitMarks does the same for habit marks.
	ReplaceHabitMarks(ctx context.Context, tx pgx.Tx, entryID string, habits []domain.HabitMark) error
}

// ConflictReader defines read operations for conflict records.
type ConflictReader interface {
	// ListUnresolvedConflicts retrieves a user's open conflicts newest-first,
	// each joined with its entry's date.
	ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error)

	// ListUnresolvedConflictsByEntry retrieves the open conflicts of one
	// entry, scoped to the owning user.
	ListUnresolvedConflictsByEntry(ctx context.Context, entryID, userID string) ([]domain.Conflict, error)
}

// ConflictWriter defines the transaction-scoped conflict mutations.
type ConflictWriter interface {
	// InsertConflict records a detected collision and returns the new
	// conflict's id.
	InsertConflict(ctx context.Context, tx pgx.Tx, conflict domain.Conflict) (string, error)

	// FindConflictForUpdate loads an unresolved conflict with a row lock,
	// enforcing ownership through the joined entry. It returns the conflict
	// and the entry's current journal text. Returns apperrors.ErrNotFound
	// for a wrong id, wrong user, or an already-resolved conflict.
	FindConflictForUpdate(ctx context.Context, tx pgx.Tx, conflictID, userID string) (*domain.Conflict, *string, error)

	// MarkConflictResolved transitions the conflict to resolved.
	MarkConflictResolved(ctx context.Context, tx pgx.Tx, conflictID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
	ConflictReader
	ConflictWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction
// capabilities. The sync coordinator and conflict resolver require it.
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
