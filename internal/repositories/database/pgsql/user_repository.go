package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/daybook-app/daybook_backend/internal/apperrors"
	"github.com/daybook-app/daybook_backend/internal/core/domain"
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/daybook-app/daybook_backend/internal/models"
	"github.com/daybook-app/daybook_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, username, name, password_hash, google_subject, created_at, updated_at, deleted_at, refresh_token_hash, refresh_token_expiry_time`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Username, &m.Name, &m.PasswordHash, &m.GoogleSubject,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt,
		&m.RefreshTokenHash, &m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveUser inserts a new user.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, name, password_hash, google_subject, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.Name, m.PasswordHash, m.GoogleSubject, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert user", err)
	}
	return nil
}

// FindUserByID retrieves a user by id, excluding soft-deleted users.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND deleted_at IS NULL;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID, err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// FindUserByUsername retrieves a user by username for login.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 AND deleted_at IS NULL;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by username", err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// EnsureUserByGoogleSubject upserts a user keyed by the external Google
// subject. The username doubles as the subject for Google-born accounts so
// the unique constraint keeps the mapping stable.
func (r *PgxUserRepository) EnsureUserByGoogleSubject(ctx context.Context, subject, username, name string) (*domain.User, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO users (user_id, username, name, password_hash, google_subject, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, '', $3, $4, $4)
		ON CONFLICT (google_subject) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns + `;`
	m, err := scanUser(r.Pool.QueryRow(ctx, query, username, name, subject, now))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure user for google subject", err)
	}
	user := mapping.ToDomainUser(*m)
	return &user, nil
}

// UpdateRefreshToken stores the hash and expiry of a newly issued refresh
// token; nil values clear it.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, updated_at = $4
		WHERE user_id = $1 AND deleted_at IS NULL;`
	tag, err := r.Pool.Exec(ctx, query, userID, tokenHash, expiresAt, time.Now().UTC())
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
