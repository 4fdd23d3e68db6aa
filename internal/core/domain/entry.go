package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryDateLayout is the calendar-date format entries are keyed by.
const EntryDateLayout = "2006-01-02"

// Entry is the per-user, per-calendar-date journaling record.
// At most one Entry exists per (user, entry date) pair.
type Entry struct {
	EntryID     string    `json:"id"`
	UserID      string    `json:"userId"`
	EntryDate   time.Time `json:"entryDate"`
	TemplateID  *string   `json:"templateId"`
	JournalText *string   `json:"journalText"`
	AuditFields
}

// Metric is one key/value data point attached to an Entry. Keys are unique
// within an entry's current metric set; the whole set is replaced on writes
// that supply a metric list.
type Metric struct {
	Key       string           `json:"key"`
	ValueNum  *decimal.Decimal `json:"value_num"`
	ValueText *string          `json:"value_text"`
}

// HabitMark records whether a habit was completed on an entry's date.
// Same full-replace-on-write semantics as Metric.
type HabitMark struct {
	HabitID   string `json:"habitId"`
	Completed bool   `json:"completed"`
}

// EntryDetail aggregates an entry with its owned rows for read endpoints.
type EntryDetail struct {
	Entry     Entry       `json:"entry"`
	Metrics   []Metric    `json:"metrics"`
	Habits    []HabitMark `json:"habits"`
	Conflicts []Conflict  `json:"conflicts"`
}
