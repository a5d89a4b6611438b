package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopbooks/shopbooks/internal/utils"
)

// userService manages operator accounts.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	audit    portssvc.AuditSvc
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserAuthorizer adds an authorizer consulted for user management
func WithUserAuthorizer(authorizer portssvc.Authorizer) UserServiceOption {
	return func(s *userService) {
		s.Authorizer = authorizer
	}
}

// WithUserAudit adds the audit trail dependency
func WithUserAudit(audit portssvc.AuditSvc) UserServiceOption {
	return func(s *userService) {
		s.audit = audit
	}
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser registers a new operator. Usernames are stored lowercase so
// logins are case-insensitive.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, createdBy string) (*domain.User, error) {
	if err := s.RequireCapability(ctx, createdBy, domain.CapManageUsers); err != nil {
		return nil, err
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if existing, err := s.userRepo.FindUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: username %q is taken", apperrors.ErrDuplicate, username)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         req.Role,
		CanDelete:    req.CanDelete,
		CanReports:   req.CanReports,
		CanUsers:     req.CanUsers,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreWrite, err)
	}

	if s.audit != nil {
		s.audit.Record(ctx, createdBy, "CREATE_USER",
			fmt.Sprintf("created user %s (role %s)", username, req.Role))
	}

	s.LogInfo(ctx, "User created",
		slog.String("user_id", user.UserID),
		slog.String("username", username))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID string, updatedBy string) error {
	if err := s.RequireCapability(ctx, updatedBy, domain.CapManageUsers); err != nil {
		return err
	}
	if userID == updatedBy {
		return fmt.Errorf("%w: cannot deactivate yourself", apperrors.ErrValidation)
	}

	if err := s.userRepo.DeactivateUser(ctx, userID, updatedBy, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate user", slog.String("user_id", userID))
		}
		return err
	}

	if s.audit != nil {
		s.audit.Record(ctx, updatedBy, "DEACTIVATE_USER", fmt.Sprintf("deactivated user %s", userID))
	}

	s.LogInfo(ctx, "User deactivated", slog.String("user_id", userID))
	return nil
}
