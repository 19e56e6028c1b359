package service

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SERVICE")

// Error codes
var (
	CodeServiceNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Service listing not found")
	CodeMissingTitle    = ErrRegistry.Register("MISSING_TITLE", errx.TypeValidation, http.StatusBadRequest, "Title is required")
	CodeInvalidRegion   = ErrRegistry.Register("INVALID_REGION", errx.TypeValidation, http.StatusBadRequest, "Invalid region code")
	CodeNotOwner        = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Not the owner of this listing")
	CodeMissingFile     = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "No file was uploaded")
)

// Helper functions
func ErrServiceNotFound() *errx.Error {
	return ErrRegistry.New(CodeServiceNotFound)
}

func ErrMissingTitle() *errx.Error {
	return ErrRegistry.New(CodeMissingTitle)
}

func ErrInvalidRegion() *errx.Error {
	return ErrRegistry.New(CodeInvalidRegion)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}
