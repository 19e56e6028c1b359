package newsletter

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("NEWSLETTER")

// Error codes
var (
	CodeInvalidEmail      = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeAlreadySubscribed = ErrRegistry.Register("ALREADY_SUBSCRIBED", errx.TypeBusiness, http.StatusConflict, "Email is already subscribed")
	CodeNotSubscribed     = ErrRegistry.Register("NOT_SUBSCRIBED", errx.TypeNotFound, http.StatusNotFound, "Email is not subscribed")
)

// Helper functions
func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrAlreadySubscribed() *errx.Error {
	return ErrRegistry.New(CodeAlreadySubscribed)
}

func ErrNotSubscribed() *errx.Error {
	return ErrRegistry.New(CodeNotSubscribed)
}
