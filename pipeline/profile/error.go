package profile

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PROFILE")

// Error codes
var (
	CodeProfileNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Profile not found")
	CodeProfileAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Profile already exists")
	CodeInvalidProfile       = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Profile is missing required fields")
)

// Helper functions
func ErrProfileNotFound() *errx.Error {
	return ErrRegistry.New(CodeProfileNotFound)
}

func ErrProfileAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeProfileAlreadyExists)
}

func ErrInvalidProfile() *errx.Error {
	return ErrRegistry.New(CodeInvalidProfile)
}
