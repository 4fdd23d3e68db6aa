package repositories

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// UserRepositoryFacade defines persistence operations for users.
type UserRepositoryFacade interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the
	// username is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by id, excluding soft-deleted users.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username for login.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// EnsureUserByGoogleSubject upserts a user keyed by the external Google
	// subject and returns the stored user.
	EnsureUserByGoogleSubject(ctx context.Context, subject, username, name string) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of a newly issued
	// refresh token; nil values clear it.
	UpdateRefreshToken(ctx context.Context, userID string, tokenHash *string, expiresAt *time.Time) error
}
