package company

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPANY")

// Error codes
var (
	CodeCompanyNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeRatingNotFound  = ErrRegistry.Register("RATING_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Rating not found")
	CodeMissingName     = ErrRegistry.Register("MISSING_NAME", errx.TypeValidation, http.StatusBadRequest, "Company name is required")
	CodeInvalidStars    = ErrRegistry.Register("INVALID_STARS", errx.TypeValidation, http.StatusBadRequest, "Stars must be between 1 and 5")
	CodeNotACompany     = ErrRegistry.Register("NOT_A_COMPANY", errx.TypeBusiness, http.StatusForbidden, "Only company accounts can perform this operation")
)

// Helper functions
func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrRatingNotFound() *errx.Error {
	return ErrRegistry.New(CodeRatingNotFound)
}

func ErrMissingName() *errx.Error {
	return ErrRegistry.New(CodeMissingName)
}

func ErrInvalidStars() *errx.Error {
	return ErrRegistry.New(CodeInvalidStars)
}

func ErrNotACompany() *errx.Error {
	return ErrRegistry.New(CodeNotACompany)
}
