package models

import "time"

// Template mirrors one row of the templates table. Metrics and Habits are
// the raw jsonb payloads; the repository (un)marshals them.
type Template struct {
	TemplateID string    `db:"template_id"`
	UserID     string    `db:"user_id"`
	Name       string    `db:"name"`
	Metrics    []byte    `db:"metrics"`
	Habits     []byte    `db:"habits"`
	CreatedAt  time.Time `db:"created_at"`
}
