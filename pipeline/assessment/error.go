package assessment

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ASSESSMENT")

// Error codes
var (
	CodeAssessmentNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Fit assessment not found")
	CodeScoringFailed      = ErrRegistry.Register("SCORING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "All scoring strategies failed")
)

// Helper functions
func ErrAssessmentNotFound() *errx.Error {
	return ErrRegistry.New(CodeAssessmentNotFound)
}

func ErrScoringFailed() *errx.Error {
	return ErrRegistry.New(CodeScoringFailed)
}
