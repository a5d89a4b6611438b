package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopbooks/shopbooks/internal/apperrors"
	"github.com/shopbooks/shopbooks/internal/core/domain"
	portssvc "github.com/shopbooks/shopbooks/internal/core/ports/services"
)

// RequireCapability creates a Gin middleware that gates a route group behind
// one capability. It runs after AuthMiddleware, which put the user ID in the
// request context. A nil authorizer grants access, mirroring how services
// without one behave.
func RequireCapability(authorizer portssvc.Authorizer, cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authorizer == nil {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if err := authorizer.Require(c.Request.Context(), userID, cap); err != nil {
			if errors.Is(err, apperrors.ErrForbidden) {
				logger.Warn("User lacks required capability",
					slog.String("user_id", userID),
					slog.String("capability", string(cap)))
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
				return
			}
			logger.Error("Capability check failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
			return
		}

		c.Next()
	}
}
