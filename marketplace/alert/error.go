package alert

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ALERT")

// Error codes
var (
	CodeAlertNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Alert not found")
	CodeInvalidEmail   = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeMissingKeyword = ErrRegistry.Register("MISSING_KEYWORD", errx.TypeValidation, http.StatusBadRequest, "Keyword is required")
	CodeInvalidRegion  = ErrRegistry.Register("INVALID_REGION", errx.TypeValidation, http.StatusBadRequest, "Invalid region code")
)

// Helper functions
func ErrAlertNotFound() *errx.Error {
	return ErrRegistry.New(CodeAlertNotFound)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrMissingKeyword() *errx.Error {
	return ErrRegistry.New(CodeMissingKeyword)
}

func ErrInvalidRegion() *errx.Error {
	return ErrRegistry.New(CodeInvalidRegion)
}
