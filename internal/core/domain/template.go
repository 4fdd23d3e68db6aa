package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateMetric is a metric preset a template seeds new entries with.
type TemplateMetric struct {
	Key          string           `json:"key"`
	DefaultValue *decimal.Decimal `json:"defaultValue,omitempty"`
}

// TemplateHabit is a habit preset a template seeds new entries with.
type TemplateHabit struct {
	HabitID          string `json:"habitId"`
	DefaultCompleted bool   `json:"defaultCompleted"`
}

// Template is a named preset of metrics and habits a user can start an
// entry from.
type Template struct {
	TemplateID string           `json:"id"`
	UserID     string           `json:"userId"`
	Name       string           `json:"name"`
	Metrics    []TemplateMetric `json:"metrics"`
	Habits     []TemplateHabit  `json:"habits"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
