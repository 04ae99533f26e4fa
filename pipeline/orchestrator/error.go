package orchestrator

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("PIPELINE")

// Error codes
var (
	CodeRunNotQueued      = ErrRegistry.Register("RUN_NOT_QUEUED", errx.TypeInternal, http.StatusInternalServerError, "Failed to queue pipeline run")
	CodeNoUsableDraft     = ErrRegistry.Register("NO_USABLE_DRAFT", errx.TypeBusiness, http.StatusConflict, "Posting has no usable draft to submit")
	CodeAlreadySubmitted  = ErrRegistry.Register("ALREADY_SUBMITTED", errx.TypeBusiness, http.StatusConflict, "Application already submitted for this posting")
	CodeBrowserFailed     = ErrRegistry.Register("BROWSER_FAILED", errx.TypeExternal, http.StatusBadGateway, "Browser session could not be started")
	CodeInvalidRunRequest = ErrRegistry.Register("INVALID_RUN", errx.TypeValidation, http.StatusBadRequest, "Run request is missing required fields")
)

// Helper functions
func ErrRunNotQueued() *errx.Error {
	return ErrRegistry.New(CodeRunNotQueued)
}

func ErrNoUsableDraft() *errx.Error {
	return ErrRegistry.New(CodeNoUsableDraft)
}

func ErrAlreadySubmitted() *errx.Error {
	return ErrRegistry.New(CodeAlreadySubmitted)
}

func ErrBrowserFailed() *errx.Error {
	return ErrRegistry.New(CodeBrowserFailed)
}

func ErrInvalidRunRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRunRequest)
}
