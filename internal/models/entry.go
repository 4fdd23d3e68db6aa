package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry mirrors one row of the entries table.
type Entry struct {
	EntryID     string    `db:"entry_id"`
	UserID      string    `db:"user_id"`
	EntryDate   time.Time `db:"entry_date"`
	TemplateID  *string   `db:"template_id"`
	JournalText *string   `db:"journal_text"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// EntryMetric mirrors one row of the entry_metrics table.
type EntryMetric struct {
	EntryID   string           `db:"entry_id"`
	Key       string           `db:"key"`
	ValueNum  *decimal.Decimal `db:"value_num"`
	ValueText *string          `db:"value_text"`
}

// EntryHabit mirrors one row of the entry_habits table.
type EntryHabit struct {
	EntryID   string `db:"entry_id"`
	HabitID   string `db:"habit_id"`
	Completed bool   `db:"completed"`
}
