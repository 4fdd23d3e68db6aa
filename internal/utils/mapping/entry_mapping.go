package mapping

import (
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/models"
)

// ToDomainEntry converts an entry row to its domain representation.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		EntryDate:   m.EntryDate,
		TemplateID:  m.TemplateID,
		JournalText: m.JournalText,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToModelEntry converts a domain entry to its row representation.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		EntryDate:   d.EntryDate,
		TemplateID:  d.TemplateID,
		JournalText: d.JournalText,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// ToDomainMetric converts an entry_metrics row to its domain representation.
func ToDomainMetric(m models.EntryMetric) domain.Metric {
	return domain.Metric{
		Key:       m.Key,
		ValueNum:  m.ValueNum,
		ValueText: m.ValueText,
	}
}

// ToDomainMetricSlice converts a slice of metric rows.
func ToDomainMetricSlice(ms []models.EntryMetric) []domain.Metric {
	out := make([]domain.Metric, len(ms))
	for i, m := range ms {
		out[i] = ToDomainMetric(m)
	}
	return out
}

// ToDomainHabitMark converts an entry_habits row to its domain representation.
func ToDomainHabitMark(m models.EntryHabit) domain.HabitMark {
	return domain.HabitMark{
		HabitID:   m.HabitID,
		Completed: m.Completed,
	}
}

// ToDomainHabitMarkSlice converts a slice of habit rows.
func ToDomainHabitMarkSlice(ms []models.EntryHabit) []domain.HabitMark {
	out := make([]domain.HabitMark, len(ms))
	for i, m := range ms {
		out[i] = ToDomainHabitMark(m)
	}
	return out
}
