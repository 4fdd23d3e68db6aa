package dto

import (
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// CreateTemplateRequest creates a journaling template.
type CreateTemplateRequest struct {
	Name    string                  `json:"name" binding:"required,max=100"`
	Metrics []domain.TemplateMetric `json:"metrics"`
	Habits  []domain.TemplateHabit  `json:"habits"`
}

// UpdateTemplateRequest replaces a template's name and contents.
type UpdateTemplateRequest struct {
	Name    string                  `json:"name" binding:"required,max=100"`
	Metrics []domain.TemplateMetric `json:"metrics"`
	Habits  []domain.TemplateHabit  `json:"habits"`
}

// TemplateResponse is the wire form of a template.
type TemplateResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Metrics   []domain.TemplateMetric `json:"metrics"`
	Habits    []domain.TemplateHabit  `json:"habits"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// ToTemplateResponse converts a domain template to its wire form.
func ToTemplateResponse(t domain.Template) TemplateResponse {
	return TemplateResponse{
		ID:        t.TemplateID,
		Name:      t.Name,
		Metrics:   t.Metrics,
		Habits:    t.Habits,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
