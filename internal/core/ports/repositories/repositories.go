package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EntryRepo             EntryRepositoryWithTx
	UserRepo              UserRepositoryFacade
	TemplateRepo          TemplateRepositoryFacade
	ReminderRepo          ReminderRepositoryFacade
	NotificationTokenRepo NotificationTokenRepositoryFacade
	JobLogRepo            JobLogRepositoryFacade
	AnalyticsRepo         AnalyticsRepositoryFacade
}
