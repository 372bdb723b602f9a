package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hinagiku/taskboard-api/internal/auth"
	"github.com/hinagiku/taskboard-api/internal/constants"
	"github.com/hinagiku/taskboard-api/internal/database"
	apierrors "github.com/hinagiku/taskboard-api/internal/errors"
	"github.com/hinagiku/taskboard-api/internal/models"
)

const bearerPrefix = "Bearer "

// RequireAuth resolves the bearer token to an active user and stores it on
// the context. Every protected route goes through here; an invalid, expired,
// or unattributable token aborts with 401.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c)
			return
		}

		email, err := tokens.Decode(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var user models.User
		if err := database.GetDB().Where("email = ?", email).First(&user).Error; err != nil {
			abortUnauthorized(c)
			return
		}

		// Deactivated accounts stop resolving even with a valid token
		if !user.IsActive {
			abortUnauthorized(c)
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	apierrors.Unauthorized(c, "Could not validate credentials")
	c.Abort()
}
