package job

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeJobAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job posting already exists")
	CodeInvalidPosting   = ErrRegistry.Register("INVALID", errx.TypeValidation, http.StatusBadRequest, "Job posting is missing required fields")
	CodeSourceFailed     = ErrRegistry.Register("SOURCE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Job source is unavailable")
	CodeNotSubmittable   = ErrRegistry.Register("NOT_SUBMITTABLE", errx.TypeBusiness, http.StatusConflict, "Job posting has no navigable application page")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidPosting() *errx.Error {
	return ErrRegistry.New(CodeInvalidPosting)
}

func ErrSourceFailed() *errx.Error {
	return ErrRegistry.New(CodeSourceFailed)
}

func ErrNotSubmittable() *errx.Error {
	return ErrRegistry.New(CodeNotSubmittable)
}
