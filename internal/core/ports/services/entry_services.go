package services

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/dto"
)

// EntryReaderSvc defines read operations for journal entries.
type EntryReaderSvc interface {
	// GetEntryByID retrieves a single entry with its metrics, habit marks
	// and unresolved conflicts.
	GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.EntryDetail, error)

	// ListEntries retrieves a page of entries ordered by entry date
	// descending, optionally bounded to an inclusive date range.
	ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntrySyncSvc defines the write side of the entry sync protocol.
type EntrySyncSvc interface {
	// UpsertEntry creates or updates the entry for (user, date), applying
	// last-write-wins and recording a conflict when the incoming write
	// collides with a newer stored journal text. Returns the written entry
	// and, when a collision was detected, the new conflict's id.
	UpsertEntry(ctx context.Context, userID string, req dto.UpsertEntryRequest) (*domain.Entry, *string, error)
}

// ConflictSvc defines operations over recorded sync conflicts.
type ConflictSvc interface {
	// ListUnresolvedConflicts retrieves the user's open conflicts, newest
	// first, joined with the owning entry's date.
	ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error)

	// ResolveConflict applies a resolution action to an unresolved
	// conflict. The returned bool is false when no unresolved conflict
	// with that id belongs to the user.
	ResolveConflict(ctx context.Context, userID string, conflictID string, req dto.ResolveConflictRequest) (bool, error)
}

// EntrySvcFacade combines all entry-related service interfaces.
type EntrySvcFacade interface {
	EntryReaderSvc
	EntrySyncSvc
	ConflictSvc
}
