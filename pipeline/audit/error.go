package audit

import (
	"net/http"

	"github.com/autocareer/autocareer/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUDIT")

// Error codes
var (
	CodeAppendFailed = ErrRegistry.Register("APPEND_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to append audit entry")
	CodeChainBroken  = ErrRegistry.Register("CHAIN_BROKEN", errx.TypeInternal, http.StatusInternalServerError, "Audit hash chain verification failed")
)

// Helper functions
func ErrAppendFailed() *errx.Error {
	return ErrRegistry.New(CodeAppendFailed)
}

func ErrChainBroken() *errx.Error {
	return ErrRegistry.New(CodeChainBroken)
}
