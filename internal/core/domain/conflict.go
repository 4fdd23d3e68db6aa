package domain

import "time"

// ConflictStatus is the lifecycle state of a Conflict.
type ConflictStatus string

const (
	ConflictUnresolved ConflictStatus = "unresolved"
	ConflictResolved   ConflictStatus = "resolved"
)

// ConflictFieldJournalText is the only entry field the sync protocol
// currently detects collisions on. The column is free-form so other fields
// could be flagged later without a schema change.
const ConflictFieldJournalText = "journal_text"

// ResolutionAction selects how a conflict's texts are reconciled.
type ResolutionAction string

const (
	// ResolutionKeepCurrent dismisses the conflict, keeping the entry text
	// that already won at upsert time.
	ResolutionKeepCurrent ResolutionAction = "keep_current"
	// ResolutionUseOther restores the overwritten remote version.
	ResolutionUseOther ResolutionAction = "use_other"
	// ResolutionMergeManual replaces the entry text with caller-merged text.
	ResolutionMergeManual ResolutionAction = "merge_manual"
)

// Valid reports whether the action is one of the three known strategies.
func (a ResolutionAction) Valid() bool {
	switch a {
	case ResolutionKeepCurrent, ResolutionUseOther, ResolutionMergeManual:
		return true
	}
	return false
}

// Conflict records one detected collision on an entry's journal text.
// LocalVersion is the text the incoming write attempted to apply;
// RemoteVersion is the text that was stored when the collision happened.
// Conflicts are never deleted, only transitioned unresolved -> resolved.
type Conflict struct {
	ConflictID    string         `json:"id"`
	EntryID       string         `json:"entryId"`
	Field         string         `json:"field"`
	LocalVersion  string         `json:"localVersion"`
	RemoteVersion string         `json:"remoteVersion"`
	Status        ConflictStatus `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	// EntryDate is joined in from the owning entry on list reads.
	EntryDate time.Time `json:"entryDate"`
}
