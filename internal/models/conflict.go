package models

import "time"

// Conflict mirrors one row of the conflicts table. Version columns are
// nullable in the schema but always written with empty-string fallbacks.
type Conflict struct {
	ConflictID    string    `db:"conflict_id"`
	EntryID       string    `db:"entry_id"`
	Field         string    `db:"field"`
	LocalVersion  *string   `db:"local_version"`
	RemoteVersion *string   `db:"remote_version"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	// EntryDate is populated by list queries joining the owning entry.
	EntryDate time.Time `db:"entry_date"`
}
