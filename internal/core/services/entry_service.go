package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
	"github.com/daybook-app/daybook_backend/internal/utils/textnorm"
)

var (
	ErrMergedTextRequired = errors.New("merge_manual requires mergedText")
	ErrInvalidEntryDate   = errors.New("entryDate must be formatted YYYY-MM-DD")
	ErrInvalidBaseVersion = errors.New("baseUpdatedAt is not a valid RFC3339 timestamp")
)

const defaultEntryPageSize = 50

// entryService coordinates the entry sync protocol: upserts with collision
// detection and the conflict resolution flow.
type entryService struct {
	entryRepo portsrepo.EntryRepositoryWithTx
}

// NewEntryService creates a new EntryService.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo: entryRepo,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// now returns the write timestamp for a mutation, truncated to the
// microsecond precision the database stores. Clients echo stored
// timestamps back as baseUpdatedAt, so generated and stored values must
// compare equal.
func (s *entryService) now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// UpsertEntry creates or updates the entry for (user, entryDate). The write
// always lands (last write wins); when it would silently discard a
// meaningfully different journal text written since the client last synced,
// a conflict row is recorded alongside.
func (s *entryService) UpsertEntry(ctx context.Context, userID string, req dto.UpsertEntryRequest) (*domain.Entry, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := time.ParseInLocation(domain.EntryDateLayout, req.EntryDate, time.UTC)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(ErrInvalidEntryDate.Error())
	}

	var baseUpdatedAt *time.Time
	if req.BaseUpdatedAt != nil {
		parsed, err := time.Parse(time.RFC3339Nano, *req.BaseUpdatedAt)
		if err != nil {
			return nil, nil, apperrors.NewBadRequestError(ErrInvalidBaseVersion.Error())
		}
		utc := parsed.UTC()
		baseUpdatedAt = &utc
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	now := s.now()

	existing, err := s.entryRepo.FindEntryForUpdate(ctx, tx, userID, entryDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}

	var entry *domain.Entry
	var conflictID *string

	if existing == nil {
		entry, err = s.entryRepo.InsertEntry(ctx, tx, domain.Entry{
			EntryID:     uuid.NewString(),
			UserID:      userID,
			EntryDate:   entryDate,
			TemplateID:  req.TemplateID,
			JournalText: req.JournalText,
			AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		})
		if err != nil {
			return nil, nil, err
		}
	} else {
		if s.hasTextCollision(existing, req.JournalText, baseUpdatedAt) {
			id, err := s.entryRepo.InsertConflict(ctx, tx, domain.Conflict{
				ConflictID:    uuid.NewString(),
				EntryID:       existing.EntryID,
				Field:         domain.ConflictFieldJournalText,
				LocalVersion:  derefOrEmpty(req.JournalText),
				RemoteVersion: derefOrEmpty(existing.JournalText),
				Status:        domain.ConflictUnresolved,
				CreatedAt:     now,
			})
			if err != nil {
				return nil, nil, err
			}
			conflictID = &id
			logger.Info("Journal text collision recorded",
				slog.String("entry_id", existing.EntryID),
				slog.String("conflict_id", id),
			)
		}

		// The incoming write always lands. An absent journal text keeps
		// the stored one instead of clearing it.
		journalText := req.JournalText
		if journalText == nil {
			journalText = existing.JournalText
		}
		entry, err = s.entryRepo.UpdateEntryContent(ctx, tx, existing.EntryID, req.TemplateID, journalText, now)
		if err != nil {
			return nil, nil, err
		}
	}

	// A nil list preserves stored rows; a present list (even empty)
	// replaces the whole set.
	if req.Metrics != nil {
		metrics := make([]domain.Metric, 0, len(req.Metrics))
		for _, m := range req.Metrics {
			metrics = append(metrics, domain.Metric{Key: m.Key, ValueNum: m.ValueNum, ValueText: m.ValueText})
		}
		if err := s.entryRepo.ReplaceMetrics(ctx, tx, entry.EntryID, metrics); err != nil {
			return nil, nil, err
		}
	}
	if req.Habits != nil {
		habits := make([]domain.HabitMark, 0, len(req.Habits))
		for _, h := range req.Habits {
			habits = append(habits, domain.HabitMark{HabitID: h.HabitID, Completed: h.Completed})
		}
		if err := s.entryRepo.ReplaceHabitMarks(ctx, tx, entry.EntryID, habits); err != nil {
			return nil, nil, err
		}
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	return entry, conflictID, nil
}

// hasTextCollision decides whether an incoming write collides with the
// stored entry. A collision needs all three: the client supplied a base
// version, that base no longer matches the stored updated_at, and the two
// journal texts differ after normalization. A client without a base
// version never conflicts; its write simply wins.
func (s *entryService) hasTextCollision(existing *domain.Entry, incomingText *string, baseUpdatedAt *time.Time) bool {
	if baseUpdatedAt == nil {
		return false
	}
	if baseUpdatedAt.Equal(existing.UpdatedAt) {
		return false
	}
	return !textnorm.Equivalent(derefOrEmpty(incomingText), derefOrEmpty(existing.JournalText))
}

// ResolveConflict applies a resolution action to one unresolved conflict.
// The returned bool is false when no unresolved conflict with that id
// belongs to the user, which includes the already-resolved case.
func (s *entryService) ResolveConflict(ctx context.Context, userID string, conflictID string, req dto.ResolveConflictRequest) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	action := domain.ResolutionAction(req.Action)
	if !action.Valid() {
		return false, apperrors.NewBadRequestError("unknown resolution action")
	}
	if action == domain.ResolutionMergeManual && req.MergedText == nil {
		return false, apperrors.NewBadRequestError(ErrMergedTextRequired.Error())
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	conflict, _, err := s.entryRepo.FindConflictForUpdate(ctx, tx, conflictID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	switch action {
	case domain.ResolutionKeepCurrent:
		// The entry text that won at upsert time stays untouched.
	case domain.ResolutionUseOther:
		if err := s.entryRepo.UpdateEntryText(ctx, tx, conflict.EntryID, userID, conflict.RemoteVersion, s.now()); err != nil {
			return false, err
		}
	case domain.ResolutionMergeManual:
		if err := s.entryRepo.UpdateEntryText(ctx, tx, conflict.EntryID, userID, *req.MergedText, s.now()); err != nil {
			return false, err
		}
	}

	if err := s.entryRepo.MarkConflictResolved(ctx, tx, conflict.ConflictID); err != nil {
		return false, err
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return false, err
	}

	logger.Info("Conflict resolved",
		slog.String("conflict_id", conflict.ConflictID),
		slog.String("entry_id", conflict.EntryID),
		slog.String("action", string(action)),
	)
	return true, nil
}

// GetEntryByID retrieves an entry with its metrics, habit marks and open
// conflicts.
func (s *entryService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.EntryDetail, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.entryRepo.FindMetricsByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	habits, err := s.entryRepo.FindHabitMarksByEntryID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.entryRepo.ListUnresolvedConflictsByEntry(ctx, entry.EntryID, userID)
	if err != nil {
		return nil, err
	}
	return &domain.EntryDetail{
		Entry:     *entry,
		Metrics:   metrics,
		Habits:    habits,
		Conflicts: conflicts,
	}, nil
}

// ListEntries retrieves a page of entries ordered by entry date descending.
func (s *entryService) ListEntries(ctx context.Context, userID string, from, to *time.Time, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	return s.entryRepo.ListEntries(ctx, userID, from, to, limit, nextToken)
}

// ListUnresolvedConflicts retrieves the user's open conflicts, newest first.
func (s *entryService) ListUnresolvedConflicts(ctx context.Context, userID string) ([]domain.Conflict, error) {
	return s.entryRepo.ListUnresolvedConflicts(ctx, userID)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
