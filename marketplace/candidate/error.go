package candidate

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate profile not found")
	CodeMissingHeadline   = ErrRegistry.Register("MISSING_HEADLINE", errx.TypeValidation, http.StatusBadRequest, "Headline is required")
	CodeInvalidRegion     = ErrRegistry.Register("INVALID_REGION", errx.TypeValidation, http.StatusBadRequest, "Invalid region code")
	CodeInvalidEmail      = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid contact email")
	CodeProfileExists     = ErrRegistry.Register("PROFILE_EXISTS", errx.TypeConflict, http.StatusConflict, "User already has a candidate profile")
	CodeNoCV              = ErrRegistry.Register("NO_CV", errx.TypeNotFound, http.StatusNotFound, "No resume has been uploaded")
	CodeMissingFile       = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "Upload file is required")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrMissingHeadline() *errx.Error {
	return ErrRegistry.New(CodeMissingHeadline)
}

func ErrInvalidRegion() *errx.Error {
	return ErrRegistry.New(CodeInvalidRegion)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrProfileExists() *errx.Error {
	return ErrRegistry.New(CodeProfileExists)
}

func ErrNoCV() *errx.Error {
	return ErrRegistry.New(CodeNoCV)
}

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}
