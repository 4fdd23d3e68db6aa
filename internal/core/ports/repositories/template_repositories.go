package repositories

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// TemplateRepositoryFacade defines persistence operations for entry templates.
type TemplateRepositoryFacade interface {
	// ListTemplates retrieves a user's templates newest-first.
	ListTemplates(ctx context.Context, userID string) ([]domain.Template, error)

	// InsertTemplate creates a template and returns it with its new id.
	InsertTemplate(ctx context.Context, template domain.Template) (*domain.Template, error)

	// UpdateTemplate replaces name/metrics/habits of an owned template.
	// Returns apperrors.ErrNotFound when absent or owned by another user.
	UpdateTemplate(ctx context.Context, template domain.Template) (*domain.Template, error)

	// DeleteTemplate removes an owned template, reporting whether a row was
	// deleted.
	DeleteTemplate(ctx context.Context, templateID, userID string) (bool, error)
}
