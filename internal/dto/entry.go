package dto

import (
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MetricInput is one metric key/value pair of an upsert request.
type MetricInput struct {
	Key       string           `json:"key" binding:"required"`
	ValueNum  *decimal.Decimal `json:"value_num"`
	ValueText *string          `json:"value_text"`
}

// HabitInput is one habit completion mark of an upsert request.
type HabitInput struct {
	HabitID   string `json:"habitId" binding:"required"`
	Completed bool   `json:"completed"`
}

// UpsertEntryRequest is the write request of the entry sync protocol.
// Metrics and Habits distinguish omitted (nil: preserve stored rows) from
// empty (replace with nothing). BaseUpdatedAt is the updated_at timestamp
// the client last observed; its absence means the client has no local copy.
type UpsertEntryRequest struct {
	EntryDate     string        `json:"entryDate" binding:"required,dateonly"`
	TemplateID    *string       `json:"templateId"`
	JournalText   *string       `json:"journalText"`
	Metrics       []MetricInput `json:"metrics"`
	Habits        []HabitInput  `json:"habits"`
	BaseUpdatedAt *string       `json:"baseUpdatedAt"`
}

// EntryResponse is the wire form of an entry.
type EntryResponse struct {
	ID          string    `json:"id"`
	EntryDate   string    `json:"entryDate"`
	TemplateID  *string   `json:"templateId"`
	JournalText *string   `json:"journalText"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToEntryResponse converts a domain entry to its wire form.
func ToEntryResponse(e domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          e.EntryID,
		EntryDate:   e.EntryDate.Format(domain.EntryDateLayout),
		TemplateID:  e.TemplateID,
		JournalText: e.JournalText,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// UpsertEntryResponse carries the written entry and, when a collision was
// detected, the id of the recorded conflict.
type UpsertEntryResponse struct {
	Entry      EntryResponse `json:"entry"`
	ConflictID *string       `json:"conflictId,omitempty"`
}

// ListEntriesRequest bounds and pages an entry listing. Dates are
// inclusive, formatted YYYY-MM-DD.
type ListEntriesRequest struct {
	From      *string `form:"from" binding:"omitempty,dateonly"`
	To        *string `form:"to" binding:"omitempty,dateonly"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// EntryDetailResponse is an entry with its owned rows and open conflicts.
type EntryDetailResponse struct {
	Entry     EntryResponse      `json:"entry"`
	Metrics   []domain.Metric    `json:"metrics"`
	Habits    []domain.HabitMark `json:"habits"`
	Conflicts []ConflictResponse `json:"conflicts"`
}
