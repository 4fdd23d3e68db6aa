package repositories

import (
	"context"

	"github.com/daybook-app/daybook_backend/internal/core/domain"
)

// NotificationTokenRepositoryFacade defines persistence operations for
// device push tokens.
type NotificationTokenRepositoryFacade interface {
	// UpsertToken registers a device token, reassigning it to the given
	// user when the (provider, token) pair already exists.
	UpsertToken(ctx context.Context, token domain.NotificationToken) (*domain.NotificationToken, error)

	// TokensForUser retrieves the raw token strings registered for a user
	// with the given provider.
	TokensForUser(ctx context.Context, userID, provider string) ([]string, error)
}

// JobLogRepositoryFacade defines the append-only job outcome log.
type JobLogRepositoryFacade interface {
	InsertJobLog(ctx context.Context, log domain.JobLog) error
}
