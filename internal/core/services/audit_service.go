package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
)

// auditService appends rows to the audit trail. Writes are best-effort: a
// failed insert is logged and swallowed, never surfaced to the caller's
// business operation.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new audit service.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvc {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvc = (*auditService)(nil)

func (s *auditService) Record(ctx context.Context, userName, action, details string) {
	event := domain.AuditEvent{
		UserName:  userName,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.auditRepo.SaveEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to record audit event",
			slog.String("action", action),
			slog.String("user", userName))
	}
}

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	events, err := s.auditRepo.ListRecentEvents(ctx, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit events")
		return nil, err
	}
	return events, nil
}
