package auditapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autocareer/autocareer/pipeline/audit"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// Handlers provides HTTP handlers for the audit log
type Handlers struct {
	store audit.Store
}

// NewHandlers creates a new audit handlers instance
func NewHandlers(store audit.Store) *Handlers {
	return &Handlers{
		store: store,
	}
}

// ListLogs retrieves audit entries newest-first
// GET /api/logs?job_id=&run_id=&action=&status=
func (h *Handlers) ListLogs(c *fiber.Ctx) error {
	filter := audit.ListFilter{
		JobID:  kernel.JobID(c.Query("job_id")),
		RunID:  kernel.RunID(c.Query("run_id")),
		Action: audit.Action(c.Query("action")),
		Status: audit.EntryStatus(c.Query("status")),
		Pagination: kernel.PaginationOptions{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
		},
	}

	entries, err := h.store.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(entries)
}

// VerifyChain recomputes the full hash chain
// GET /api/logs/verify
func (h *Handlers) VerifyChain(c *fiber.Ctx) error {
	entries, err := h.store.ListChain(c.Context())
	if err != nil {
		return err
	}

	broken := audit.VerifyChain(entries)
	if broken >= 0 {
		return audit.ErrChainBroken().WithDetail("first_broken_index", broken)
	}

	return c.JSON(fiber.Map{
		"entries": len(entries),
		"intact":  true,
	})
}

// RegisterRoutes registers all audit log routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/logs")

	api.Get("/", handlers.ListLogs)
	api.Get("/verify", handlers.VerifyChain)
}
