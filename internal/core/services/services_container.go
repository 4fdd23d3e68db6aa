package services

import (
	portsrepo "github.com/daybook-app/daybook_backend/internal/core/ports/repositories"
	portssvc "github.com/daybook-app/daybook_backend/internal/core/ports/services"
	"github.com/daybook-app/daybook_backend/internal/platform/push"
	"github.com/daybook-app/daybook_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, pushSender push.Sender) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Entry = NewEntryService(repos.EntryRepo)
	container.Template = NewTemplateService(repos.TemplateRepo)
	container.Reminder = NewReminderService(repos.ReminderRepo)
	container.Notification = NewNotificationService(repos.NotificationTokenRepo, pushSender)
	container.Analytics = NewAnalyticsService(repos.AnalyticsRepo)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleAuth = NewGoogleAuthService(cfg)

	return container
}
