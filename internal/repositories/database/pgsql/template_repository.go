package pgsql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/daybook-app/daybook_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTemplateRepository struct {
	BaseRepository
}

// newPgxTemplateRepository creates a new repository for entry templates.
func newPgxTemplateRepository(pool *pgxpool.Pool) portsrepo.TemplateRepositoryFacade {
	return &PgxTemplateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTemplateRepository implements portsrepo.TemplateRepositoryFacade
var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

func toDomainTemplate(m models.Template) (domain.Template, error) {
	t := domain.Template{
		TemplateID: m.TemplateID,
		UserID:     m.UserID,
		Name:       m.Name,
		CreatedAt:  m.CreatedAt,
	}
	if len(m.Metrics) > 0 {
		if err := json.Unmarshal(m.Metrics, &t.Metrics); err != nil {
			return t, apperrors.NewAppError(500, "failed to decode template metrics", err)
		}
	}
	if len(m.Habits) > 0 {
		if err := json.Unmarshal(m.Habits, &t.Habits); err != nil {
			return t, apperrors.NewAppError(500, "failed to decode template habits", err)
		}
	}
	return t, nil
}

func encodeTemplate(t domain.Template) (metrics, habits []byte, err error) {
	if t.Metrics == nil {
		t.Metrics = []domain.TemplateMetric{}
	}
	if t.Habits == nil {
		t.Habits = []domain.TemplateHabit{}
	}
	metrics, err = json.Marshal(t.Metrics)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to encode template metrics", err)
	}
	habits, err = json.Marshal(t.Habits)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to encode template habits", err)
	}
	return metrics, habits, nil
}

const templateColumns = `template_id, user_id, name, metrics, habits, created_at`

// ListTemplates retrieves a user's templates newest-first.
func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, userID string) ([]domain.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list templates", err)
	}
	defer rows.Close()

	var templates []domain.Template
	for rows.Next() {
		var m models.Template
		if err := rows.Scan(&m.TemplateID, &m.UserID, &m.Name, &m.Metrics, &m.Habits, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan template row", err)
		}
		t, err := toDomainTemplate(m)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate template rows", err)
	}
	return templates, nil
}

// InsertTemplate creates a template and returns it with its new id.
func (r *PgxTemplateRepository) InsertTemplate(ctx context.Context, template domain.Template) (*domain.Template, error) {
	metrics, habits, err := encodeTemplate(template)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO templates (template_id, user_id, name, metrics, habits, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + templateColumns + `;`
	var m models.Template
	err = r.Pool.QueryRow(ctx, query,
		template.TemplateID, template.UserID, template.Name, metrics, habits, template.CreatedAt,
	).Scan(&m.TemplateID, &m.UserID, &m.Name, &m.Metrics, &m.Habits, &m.CreatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert template", err)
	}
	t, err := toDomainTemplate(m)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTemplate replaces name/metrics/habits of an owned template.
func (r *PgxTemplateRepository) UpdateTemplate(ctx context.Context, template domain.Template) (*domain.Template, error) {
	metrics, habits, err := encodeTemplate(template)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE templates
		SET name = $3, metrics = $4, habits = $5
		WHERE template_id = $1 AND user_id = $2
		RETURNING ` + templateColumns + `;`
	var m models.Template
	err = r.Pool.QueryRow(ctx, query,
		template.TemplateID, template.UserID, template.Name, metrics, habits,
	).Scan(&m.TemplateID, &m.UserID, &m.Name, &m.Metrics, &m.Habits, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to update template "+template.TemplateID, err)
	}
	t, err := toDomainTemplate(m)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTemplate removes an owned template. Entry references are nulled by
// the foreign key.
func (r *PgxTemplateRepository) DeleteTemplate(ctx context.Context, templateID, userID string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM templates WHERE template_id = $1 AND user_id = $2;`, templateID, userID)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to delete template "+templateID, err)
	}
	return tag.RowsAffected() > 0, nil
}
