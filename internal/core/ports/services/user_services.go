package services

import (
	"context"
	"time"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
	"github.com/daybook-app/daybook_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a new password-based user.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// EnsureGoogleUser finds or creates the user bound to a Google subject.
	EnsureGoogleUser(ctx context.Context, subject, name string) (*domain.User, error)

	// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken revokes the user's refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with username and password.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
