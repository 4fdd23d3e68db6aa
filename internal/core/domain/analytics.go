package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricAverage is the aggregate of one metric key over a date range.
type MetricAverage struct {
	Key     string           `json:"key"`
	Count   int64            `json:"count"`
	Average *decimal.Decimal `json:"average"`
}

// HabitCompletionRate is the fraction of marked days a habit was completed.
type HabitCompletionRate struct {
	HabitID        string  `json:"habitId"`
	MarkedDays     int64   `json:"markedDays"`
	CompletedDays  int64   `json:"completedDays"`
	CompletionRate float64 `json:"completionRate"`
}

// MetricCorrelation is the Pearson correlation between two metric keys,
// paired by entry date. Coefficient is nil when fewer than two paired
// samples exist.
type MetricCorrelation struct {
	KeyA        string   `json:"keyA"`
	KeyB        string   `json:"keyB"`
	SampleCount int64    `json:"sampleCount"`
	Coefficient *float64 `json:"coefficient"`
}

// AnalyticsSummary bundles the read-side aggregates for one user and range.
type AnalyticsSummary struct {
	From         time.Time             `json:"from"`
	To           time.Time             `json:"to"`
	Metrics      []MetricAverage       `json:"metrics"`
	Habits       []HabitCompletionRate `json:"habits"`
	Correlations []MetricCorrelation   `json:"correlations,omitempty"`
}

// ExportRow is one line of the CSV entry export: an entry joined with one
// of its metrics (metric fields empty for entries without metrics).
type ExportRow struct {
	EntryDate   time.Time
	JournalText *string
	MetricKey   *string
	ValueNum    *decimal.Decimal
	ValueText   *string
}
