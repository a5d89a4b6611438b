package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/platform/config"
	"github.com/shopbooks/shopbooks/internal/utils"
)

// authService verifies credentials and issues access tokens. It needs the
// application config for the signing secret and expiry.
type authService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditSvc
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, audit portssvc.AuditSvc) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		audit:    audit,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and returns a signed JWT. Every failure
// mode maps to the same forbidden error so the response does not reveal
// whether the username exists.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown username", slog.String("username", username))
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up user for login", slog.String("username", username))
		return nil, err
	}

	if !user.IsActive {
		s.LogWarn(ctx, "Login attempt for inactive user", slog.String("username", username))
		return nil, apperrors.ErrForbidden
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("username", username))
		if s.audit != nil {
			s.audit.Record(ctx, username, "LOGIN_FAILED", "wrong password")
		}
		return nil, apperrors.ErrForbidden
	}

	expireAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("user_id", user.UserID))
		return nil, err
	}

	if s.audit != nil {
		s.audit.Record(ctx, username, "LOGIN", "successful login")
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:    token,
		ExpireAt: expireAt,
		User:     dto.ToUserResponse(user),
	}, nil
}
