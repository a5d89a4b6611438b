package services

import (
	"context"
	"log/slog"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.Authorizer
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireCapability checks the caller's capability through the configured
// authorizer. Services without one grant access; the HTTP boundary is then
// the only gate, which is the development-mode behavior.
func (s *BaseService) RequireCapability(ctx context.Context, userID string, cap domain.Capability) error {
	if s.Authorizer != nil {
		return s.Authorizer.Require(ctx, userID, cap)
	}
	s.LogDebug(ctx, "No authorizer configured, access granted by default",
		slog.String("user_id", userID),
		slog.String("capability", string(cap)))
	return nil
}
