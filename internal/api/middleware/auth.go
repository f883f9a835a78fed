package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/An-Array/SM-Backend/internal/api/models"
	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/api/response"
	"github.com/An-Array/SM-Backend/internal/token"
)

const userContextKey = "currentUser"

// RequireAuth resolves the bearer token into an authenticated user exactly
// once per request and stores the user in the gin context. Handlers read it
// with CurrentUser and never re-fetch. A token whose user no longer exists is
// rejected the same way as an invalid one.
func RequireAuth(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorResponse(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			slog.WarnContext(c.Request.Context(), "token rejected", "error", err)
			response.ErrorResponse(c, http.StatusUnauthorized, "could not validate credentials")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				response.ErrorResponse(c, http.StatusUnauthorized, "could not validate credentials")
			} else {
				response.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
			}
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// RequireAuth. It must only be called from handlers behind that middleware.
func CurrentUser(c *gin.Context) *models.User {
	user, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	u, _ := user.(*models.User)
	return u
}
