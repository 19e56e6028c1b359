package offer

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("OFFER")

// Error codes
var (
	CodeOfferNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Offer not found")
	CodeMissingTitle      = ErrRegistry.Register("MISSING_TITLE", errx.TypeValidation, http.StatusBadRequest, "Title is required")
	CodeInvalidRegion     = ErrRegistry.Register("INVALID_REGION", errx.TypeValidation, http.StatusBadRequest, "Invalid region code")
	CodeInvalidType       = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid offer type")
	CodeAlreadyPublished  = ErrRegistry.Register("ALREADY_PUBLISHED", errx.TypeBusiness, http.StatusConflict, "Offer is already published")
	CodeUnauthorizedOffer = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusForbidden, "Not the owner of this offer")
	CodeQuestionNotFound  = ErrRegistry.Register("QUESTION_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Question not found")
	CodeEmptyQuestion     = ErrRegistry.Register("EMPTY_QUESTION", errx.TypeValidation, http.StatusBadRequest, "Question text is required")
	CodeEmptyAnswer       = ErrRegistry.Register("EMPTY_ANSWER", errx.TypeValidation, http.StatusBadRequest, "Answer text is required")
	CodeInvalidReason     = ErrRegistry.Register("INVALID_REASON", errx.TypeValidation, http.StatusBadRequest, "Invalid report reason")
)

// Helper functions
func ErrOfferNotFound() *errx.Error {
	return ErrRegistry.New(CodeOfferNotFound)
}

func ErrMissingTitle() *errx.Error {
	return ErrRegistry.New(CodeMissingTitle)
}

func ErrInvalidRegion() *errx.Error {
	return ErrRegistry.New(CodeInvalidRegion)
}

func ErrInvalidType() *errx.Error {
	return ErrRegistry.New(CodeInvalidType)
}

func ErrAlreadyPublished() *errx.Error {
	return ErrRegistry.New(CodeAlreadyPublished)
}

func ErrUnauthorizedOffer() *errx.Error {
	return ErrRegistry.New(CodeUnauthorizedOffer)
}

func ErrQuestionNotFound() *errx.Error {
	return ErrRegistry.New(CodeQuestionNotFound)
}

func ErrEmptyQuestion() *errx.Error {
	return ErrRegistry.New(CodeEmptyQuestion)
}

func ErrEmptyAnswer() *errx.Error {
	return ErrRegistry.New(CodeEmptyAnswer)
}

func ErrInvalidReason() *errx.Error {
	return ErrRegistry.New(CodeInvalidReason)
}
