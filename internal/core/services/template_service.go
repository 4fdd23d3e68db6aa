package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/dto"
	"github.com/daybook-app/daybook_backend/internal/middleware"
)

// templateService provides journaling template operations.
type templateService struct {
	templateRepo portsrepo.TemplateRepositoryFacade
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade) portssvc.TemplateSvcFacade {
	return &templateService{
		templateRepo: templateRepo,
	}
}

// Ensure templateService implements the portssvc.TemplateSvcFacade interface
var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// ListTemplates retrieves the user's templates, newest first.
func (s *templateService) ListTemplates(ctx context.Context, userID string) ([]domain.Template, error) {
	return s.templateRepo.ListTemplates(ctx, userID)
}

// CreateTemplate creates a template.
func (s *templateService) CreateTemplate(ctx context.Context, userID string, req dto.CreateTemplateRequest) (*domain.Template, error) {
	template := domain.Template{
		TemplateID: uuid.NewString(),
		UserID:     userID,
		Name:       req.Name,
		Metrics:    req.Metrics,
		Habits:     req.Habits,
		CreatedAt:  time.Now().UTC(),
	}
	saved, err := s.templateRepo.InsertTemplate(ctx, template)
	if err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).Info("Template created", "template_id", saved.TemplateID)
	return saved, nil
}

// UpdateTemplate replaces a template's name and contents.
func (s *templateService) UpdateTemplate(ctx context.Context, userID string, templateID string, req dto.UpdateTemplateRequest) (*domain.Template, error) {
	return s.templateRepo.UpdateTemplate(ctx, domain.Template{
		TemplateID: templateID,
		UserID:     userID,
		Name:       req.Name,
		Metrics:    req.Metrics,
		Habits:     req.Habits,
	})
}

// DeleteTemplate removes a template.
func (s *templateService) DeleteTemplate(ctx context.Context, userID string, templateID string) error {
	deleted, err := s.templateRepo.DeleteTemplate(ctx, templateID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}
