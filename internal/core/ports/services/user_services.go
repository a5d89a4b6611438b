package services

import (
	"context"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/dto"
)

// UserSvcFacade defines operations for managing operators.
type UserSvcFacade interface {
	// CreateUser registers a new operator with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, createdBy string) (*domain.User, error)

	// GetUserByID retrieves a user by id.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// DeactivateUser marks a user as inactive.
	DeactivateUser(ctx context.Context, userID string, updatedBy string) error
}

// AuthSvcFacade authenticates operators and issues tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed JWT.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// Authorizer is consulted at the boundary before privileged core operations.
// Core services themselves assume the caller is already authorized.
type Authorizer interface {
	// Require returns apperrors.ErrForbidden when the user lacks the capability.
	Require(ctx context.Context, userID string, cap domain.Capability) error
}
