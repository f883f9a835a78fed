package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the envelope for every non-2xx response.
type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Detail  string `json:"detail"`
}

// ErrorResponse writes the error envelope with the given status code.
func ErrorResponse(c *gin.Context, code int, detail string) {
	c.JSON(code, Error{
		Success: false,
		Code:    code,
		Detail:  detail,
	})
}

// ValidationError reports a malformed request body or query parameter.
// Validation failures never reach the service layer.
func ValidationError(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
}
