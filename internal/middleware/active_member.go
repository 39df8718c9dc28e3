package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unikampus/kampus-backend/internal/common"
)

// ActivityChecker reports whether a member account is active
type ActivityChecker interface {
	IsActive(ctx context.Context, userID int64) (bool, error)
}

// RequireActiveMember rejects deactivated or unknown accounts. Must run after JWTAuth.
func RequireActiveMember(members ActivityChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			common.ErrorResponse(c, http.StatusUnauthorized, "Login required", common.ErrUnauthorized)
			c.Abort()
			return
		}

		active, err := members.IsActive(c.Request.Context(), userID)
		switch {
		case errors.Is(err, common.ErrUserNotFound):
			common.ErrorResponse(c, http.StatusForbidden, "Account is not active", err)
			c.Abort()
			return
		case err != nil:
			common.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", err)
			c.Abort()
			return
		case !active:
			common.ErrorResponse(c, http.StatusForbidden, "Account is not active", common.ErrInactiveMember)
			c.Abort()
			return
		}

		c.Next()
	}
}
