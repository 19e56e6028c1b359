package application

import (
	"net/http"

	"github.com/redlaboral/portal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied      = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusConflict, "Already applied to this offer")
	CodeOfferNotOpen        = ErrRegistry.Register("OFFER_NOT_OPEN", errx.TypeBusiness, http.StatusConflict, "Offer is not open for applications")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid application status")
	CodeNotOfferOwner       = ErrRegistry.Register("NOT_OFFER_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Not the owner of this offer")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrOfferNotOpen() *errx.Error {
	return ErrRegistry.New(CodeOfferNotOpen)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrNotOfferOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOfferOwner)
}
