package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/pkg/jwt"
)

// ContextKeyCurrentUser is where the resolved user is stored on the gin
// context.
const ContextKeyCurrentUser = "current_user"

// OptionalAuth derives the current user from a bearer token if one is
// present and valid. It never rejects the request: queries and subscriptions
// work unauthenticated, and mutations that need identity enforce it
// themselves.
func OptionalAuth(tokens *jwt.Manager, users service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := tokens.Validate(parts[1])
		if err != nil {
			log.Debug().Err(err).Msg("bearer token rejected")
			c.Next()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			log.Debug().Err(err).Msg("invalid user id in token")
			c.Next()
			return
		}

		// A verified token must still resolve to a stored user.
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			log.Debug().Err(err).Str("user_id", claims.UserID).Msg("token user not found")
			c.Next()
			return
		}

		c.Set(ContextKeyCurrentUser, u)
		c.Next()
	}
}

// CurrentUser returns the user attached by OptionalAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, exists := c.Get(ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	u, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return u
}
