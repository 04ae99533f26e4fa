package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/job/jobsrv"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// Handlers provides HTTP handlers for job posting operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchJobs queries the external source and ingests results
// POST /api/jobs/search
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	var req job.SearchJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidPosting().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.SearchAndIngest(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListJobs retrieves stored postings
// GET /api/jobs?status=ANALYZED&order_by=fit
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	req := job.ListJobsRequest{
		Status:     job.Status(c.Query("status")),
		OrderByFit: c.Query("order_by") == "fit",
		Pagination: kernel.PaginationOptions{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
		},
	}

	jobs, err := h.service.ListJobs(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJob retrieves a posting by ID
// GET /api/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	id := kernel.JobID(c.Params("id"))
	if id.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	p, err := h.service.GetJob(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(p)
}

// DeleteJob deletes a posting
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	id := kernel.JobID(c.Params("id"))
	if id.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.Context(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// RegisterRoutes registers all job posting routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/jobs")

	api.Get("/", handlers.ListJobs)
	api.Post("/search", handlers.SearchJobs)
	api.Get("/:id", handlers.GetJob)
	api.Delete("/:id", handlers.DeleteJob)
}
