package services

import (
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Authorizer and audit first since most services depend on them
	container.Authorizer = NewCapabilityAuthorizer(repos.UserRepo)
	container.Audit = NewAuditService(repos.AuditRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuthorizer(container.Authorizer),
		WithAccountAudit(container.Audit),
	)

	container.Reconciler = NewReconcilerService(repos.AccountRepo, repos.JournalRepo)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		container.Account,
		container.Reconciler,
		WithJournalAuthorizer(container.Authorizer),
		WithJournalAudit(container.Audit),
	)

	container.Statement = NewStatementService(repos.AccountRepo, repos.JournalRepo)
	container.Aging = NewAgingService(repos.JournalRepo)
	container.Dashboard = NewDashboardService(repos.AccountRepo, repos.JournalRepo, container.Aging)

	container.Backup = NewBackupService(
		repos.BackupRepo,
		repos.JournalRepo,
		container.Reconciler,
		WithBackupAuthorizer(container.Authorizer),
		WithBackupAudit(container.Audit),
	)

	container.User = NewUserService(
		repos.UserRepo,
		WithUserAuthorizer(container.Authorizer),
		WithUserAudit(container.Audit),
	)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.Audit)

	return container
}
