package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/api/service"
)

// FromError maps a typed service or repository error to its HTTP status code
// and writes the error envelope. This is the single place the taxonomy is
// translated; controllers pass errors through unmodified.
//
// Forbidden maps to 401, not 403, matching the original API behavior.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrVoteNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrNotOwner):
		ErrorResponse(c, http.StatusUnauthorized, "not authorized to perform requested action")
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrVoteExists):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}
