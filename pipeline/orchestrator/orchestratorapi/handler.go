package orchestratorapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/orchestrator"
	"github.com/autocareer/autocareer/pipeline/orchestrator/orchestratorsrv"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// Handlers provides HTTP handlers for pipeline operations
type Handlers struct {
	service *orchestratorsrv.PipelineService
}

// NewHandlers creates a new pipeline handlers instance
func NewHandlers(service *orchestratorsrv.PipelineService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// AnalyzeFit scores one posting against a profile
// POST /api/pipeline/jobs/:jobId/analyze
func (h *Handlers) AnalyzeFit(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("job_id", "missing or empty")
	}

	var req struct {
		ProfileID kernel.ProfileID `json:"profile_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return orchestrator.ErrInvalidRunRequest().WithDetail("parse_error", err.Error())
	}
	if req.ProfileID.IsEmpty() {
		return orchestrator.ErrInvalidRunRequest().WithDetail("field", "profile_id")
	}

	a, err := h.service.AnalyzeFit(c.Context(), req.ProfileID, jobID)
	if err != nil {
		return err
	}

	return c.JSON(a)
}

// GenerateDraft writes a cover letter draft for one posting
// POST /api/pipeline/jobs/:jobId/draft
func (h *Handlers) GenerateDraft(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("job_id", "missing or empty")
	}

	var req struct {
		ProfileID kernel.ProfileID `json:"profile_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return orchestrator.ErrInvalidRunRequest().WithDetail("parse_error", err.Error())
	}
	if req.ProfileID.IsEmpty() {
		return orchestrator.ErrInvalidRunRequest().WithDetail("field", "profile_id")
	}

	d, err := h.service.GenerateDraft(c.Context(), req.ProfileID, jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(d)
}

// UpdateDraft applies a manual revision to a draft
// PUT /api/pipeline/drafts/:draftId
func (h *Handlers) UpdateDraft(c *fiber.Ctx) error {
	draftID := kernel.DraftID(c.Params("draftId"))
	if draftID.IsEmpty() {
		return orchestrator.ErrInvalidRunRequest().WithDetail("draft_id", "missing or empty")
	}

	var req orchestrator.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return orchestrator.ErrInvalidRunRequest().WithDetail("parse_error", err.Error())
	}

	d, err := h.service.UpdateDraft(c.Context(), draftID, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(d)
}

// ApproveDraft clears a draft for submission
// POST /api/pipeline/drafts/:draftId/approve
func (h *Handlers) ApproveDraft(c *fiber.Ctx) error {
	draftID := kernel.DraftID(c.Params("draftId"))
	if draftID.IsEmpty() {
		return orchestrator.ErrInvalidRunRequest().WithDetail("draft_id", "missing or empty")
	}

	d, err := h.service.ApproveDraft(c.Context(), draftID)
	if err != nil {
		return err
	}

	return c.JSON(d)
}

// DiscardDraft rejects a draft
// POST /api/pipeline/drafts/:draftId/discard
func (h *Handlers) DiscardDraft(c *fiber.Ctx) error {
	draftID := kernel.DraftID(c.Params("draftId"))
	if draftID.IsEmpty() {
		return orchestrator.ErrInvalidRunRequest().WithDetail("draft_id", "missing or empty")
	}

	d, err := h.service.DiscardDraft(c.Context(), draftID)
	if err != nil {
		return err
	}

	return c.JSON(d)
}

// SubmitApplication submits the application for one posting
// POST /api/pipeline/jobs/:jobId/submit
func (h *Handlers) SubmitApplication(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("job_id", "missing or empty")
	}

	var req orchestrator.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return orchestrator.ErrInvalidRunRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.SubmitApplication(c.Context(), jobID, req.DryRun)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// RunPipeline queues a batch run
// POST /api/pipeline/run
func (h *Handlers) RunPipeline(c *fiber.Ctx) error {
	var req orchestrator.RunRequest
	if err := c.BodyParser(&req); err != nil {
		return orchestrator.ErrInvalidRunRequest().WithDetail("parse_error", err.Error())
	}

	runID, err := h.service.EnqueueRun(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"run_id": runID,
		"status": "queued",
	})
}

// RegisterRoutes registers all pipeline routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/pipeline")

	api.Post("/jobs/:jobId/analyze", handlers.AnalyzeFit)
	api.Post("/jobs/:jobId/draft", handlers.GenerateDraft)
	api.Post("/jobs/:jobId/submit", handlers.SubmitApplication)
	api.Put("/drafts/:draftId", handlers.UpdateDraft)
	api.Post("/drafts/:draftId/approve", handlers.ApproveDraft)
	api.Post("/drafts/:draftId/discard", handlers.DiscardDraft)
	api.Post("/run", handlers.RunPipeline)
}
