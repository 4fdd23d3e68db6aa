package pgsql

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/daybook-app/daybook_backend/internal/models"
	"github.com/daybook-app/daybook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationTokenRepository struct {
	BaseRepository
}

// newPgxNotificationTokenRepository creates a new repository for device
// push tokens.
func newPgxNotificationTokenRepository(pool *pgxpool.Pool) portsrepo.NotificationTokenRepositoryFacade {
	return &PgxNotificationTokenRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationTokenRepository implements the facade
var _ portsrepo.NotificationTokenRepositoryFacade = (*PgxNotificationTokenRepository)(nil)

// UpsertToken registers a device token. A (provider, token) pair already
// registered moves to the given user, covering devices that change hands.
func (r *PgxNotificationTokenRepository) UpsertToken(ctx context.Context, token domain.NotificationToken) (*domain.NotificationToken, error) {
	query := `
		INSERT INTO notification_tokens (token_id, user_id, provider, token, platform, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (provider, token) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			platform = EXCLUDED.platform,
			updated_at = EXCLUDED.updated_at
		RETURNING token_id, user_id, provider, token, platform, updated_at;`
	var m models.NotificationToken
	err := r.Pool.QueryRow(ctx, query,
		token.TokenID, token.UserID, token.Provider, token.Token, token.Platform, token.UpdatedAt,
	).Scan(&m.TokenID, &m.UserID, &m.Provider, &m.Token, &m.Platform, &m.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert notification token", err)
	}
	saved := mapping.ToDomainNotificationToken(m)
	return &saved, nil
}

// TokensForUser retrieves the raw token strings registered for a user with
// the given provider.
func (r *PgxNotificationTokenRepository) TokensForUser(ctx context.Context, userID, provider string) ([]string, error) {
	query := `SELECT token FROM notification_tokens WHERE user_id = $1 AND provider = $2 ORDER BY updated_at DESC;`
	rows, err := r.Pool.Query(ctx, query, userID, provider)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query notification tokens", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan notification token", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate notification tokens", err)
	}
	return tokens, nil
}
