package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portsrepo "github.com/shopbooks/shopbooks/internal/core/ports/repositories"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
)

// capabilityAuthorizer grants capabilities from the stored user record.
// It sits at the boundary of privileged operations; core services never
// inspect roles themselves.
type capabilityAuthorizer struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewCapabilityAuthorizer creates an authorizer backed by the user store.
func NewCapabilityAuthorizer(userRepo portsrepo.UserRepositoryFacade) portssvc.Authorizer {
	return &capabilityAuthorizer{userRepo: userRepo}
}

var _ portssvc.Authorizer = (*capabilityAuthorizer)(nil)

func (a *capabilityAuthorizer) Require(ctx context.Context, userID string, cap domain.Capability) error {
	user, err := a.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		a.LogWarn(ctx, "Authorization check for unknown user",
			slog.String("user_id", userID),
			slog.String("capability", string(cap)))
		return fmt.Errorf("%w: unknown user", apperrors.ErrForbidden)
	}
	if !user.IsActive {
		return fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}
	if !user.Has(cap) {
		return fmt.Errorf("%w: missing capability %s", apperrors.ErrForbidden, cap)
	}
	return nil
}
