package services

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/dto"
)

// TemplateSvcFacade defines operations over journaling templates.
type TemplateSvcFacade interface {
	// ListTemplates retrieves the user's templates, newest first.
	ListTemplates(ctx context.Context, userID string) ([]domain.Template, error)

	// CreateTemplate creates a template.
	CreateTemplate(ctx context.Context, userID string, req dto.CreateTemplateRequest) (*domain.Template, error)

	// UpdateTemplate replaces a template's name and contents.
	UpdateTemplate(ctx context.Context, userID string, templateID string, req dto.UpdateTemplateRequest) (*domain.Template, error)

	// DeleteTemplate removes a template. Entry references are nulled.
	DeleteTemplate(ctx context.Context, userID string, templateID string) error
}
