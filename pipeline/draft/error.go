package draft

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("DRAFT")

// Error codes
var (
	CodeDraftNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Draft not found")
	CodeEmptyDraft     = ErrRegistry.Register("EMPTY", errx.TypeValidation, http.StatusBadRequest, "Draft content cannot be empty")
	CodeDraftDiscarded = ErrRegistry.Register("DISCARDED", errx.TypeBusiness, http.StatusConflict, "Draft has been discarded")
)

// Helper functions
func ErrDraftNotFound() *errx.Error {
	return ErrRegistry.New(CodeDraftNotFound)
}

func ErrEmptyDraft() *errx.Error {
	return ErrRegistry.New(CodeEmptyDraft)
}

func ErrDraftDiscarded() *errx.Error {
	return ErrRegistry.New(CodeDraftDiscarded)
}
