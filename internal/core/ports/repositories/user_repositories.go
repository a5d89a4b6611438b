package repositories

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
)

// UserRepositoryFacade defines operations for operator accounts.
type UserRepositoryFacade interface {
	// FindUserByID retrieves a user by id.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by username (stored lowercase).
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// DeactivateUser marks a user as inactive.
	DeactivateUser(ctx context.Context, userID string, updatedBy string, now time.Time) error
}
