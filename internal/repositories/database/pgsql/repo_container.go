package pgsql

import (
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		EntryRepo:             newPgxEntryRepository(dbPool),
		UserRepo:              newPgxUserRepository(dbPool),
		TemplateRepo:          newPgxTemplateRepository(dbPool),
		ReminderRepo:          newPgxReminderRepository(dbPool),
		NotificationTokenRepo: newPgxNotificationTokenRepository(dbPool),
		JobLogRepo:            newPgxJobLogRepository(dbPool),
		AnalyticsRepo:         newPgxAnalyticsRepository(dbPool),
	}
}
