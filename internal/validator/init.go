package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// GetValidator returns the shared validator instance used outside of gin's
// request binding (e.g. config validation).
func GetValidator() *validator.Validate {
	return validate
}
