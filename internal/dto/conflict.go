package dto

import (
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// ResolveConflictRequest picks the winning text for an unresolved conflict.
// MergedText is required only for the merge_manual action.
type ResolveConflictRequest struct {
	Action     string  `json:"action" binding:"required,oneof=keep_current use_other merge_manual"`
	MergedText *string `json:"mergedText"`
}

// ConflictResponse is the wire form of a recorded conflict.
type ConflictResponse struct {
	ID            string    `json:"id"`
	EntryID       string    `json:"entryId"`
	EntryDate     string    `json:"entryDate,omitempty"`
	Field         string    `json:"field"`
	LocalVersion  string    `json:"localVersion"`
	RemoteVersion string    `json:"remoteVersion"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToConflictResponse converts a domain conflict to its wire form.
func ToConflictResponse(c domain.Conflict) ConflictResponse {
	resp := ConflictResponse{
		ID:            c.ConflictID,
		EntryID:       c.EntryID,
		Field:         c.Field,
		LocalVersion:  c.LocalVersion,
		RemoteVersion: c.RemoteVersion,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
	}
	if !c.EntryDate.IsZero() {
		resp.EntryDate = c.EntryDate.Format(domain.EntryDateLayout)
	}
	return resp
}

// ToConflictResponses converts a slice of domain conflicts.
func ToConflictResponses(conflicts []domain.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ToConflictResponse(c))
	}
	return out
}
