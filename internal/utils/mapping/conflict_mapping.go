package mapping

import (
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/models"
)

// ToDomainConflict converts a conflict row to its domain representation.
// Nullable version columns collapse to empty strings, which is how the
// coordinator writes them.
func ToDomainConflict(m models.Conflict) domain.Conflict {
	c := domain.Conflict{
		ConflictID: m.ConflictID,
		EntryID:    m.EntryID,
		Field:      m.Field,
		Status:     domain.ConflictStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		EntryDate:  m.EntryDate,
	}
	if m.LocalVersion != nil {
		c.LocalVersion = *m.LocalVersion
	}
	if m.RemoteVersion != nil {
		c.RemoteVersion = *m.RemoteVersion
	}
	return c
}

// ToDomainConflictSlice converts a slice of conflict rows.
func ToDomainConflictSlice(ms []models.Conflict) []domain.Conflict {
	out := make([]domain.Conflict, len(ms))
	for i, m := range ms {
		out[i] = ToDomainConflict(m)
	}
	return out
}
