package profileapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pipeline/profile/profilesrv"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// Handlers provides HTTP handlers for profile operations
type Handlers struct {
	service *profilesrv.ProfileService
}

// NewHandlers creates a new profile handlers instance
func NewHandlers(service *profilesrv.ProfileService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// CreateProfile creates a new applicant profile
// POST /api/profiles
func (h *Handlers) CreateProfile(c *fiber.Ctx) error {
	var req profile.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return profile.ErrInvalidProfile().WithDetail("parse_error", err.Error())
	}

	p, err := h.service.CreateProfile(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(profile.ToResponse(p))
}

// GetProfile retrieves a profile by ID
// GET /api/profiles/:id
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	id := kernel.ProfileID(c.Params("id"))
	if id.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetProfile(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// ListProfiles retrieves profiles with pagination
// GET /api/profiles
func (h *Handlers) ListProfiles(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()

	profiles, err := h.service.ListProfiles(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(profiles)
}

// UpdateProfile applies a partial update to a profile
// PUT /api/profiles/:id
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	id := kernel.ProfileID(c.Params("id"))
	if id.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("id", "missing or empty")
	}

	var req profile.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return profile.ErrInvalidProfile().WithDetail("parse_error", err.Error())
	}

	p, err := h.service.UpdateProfile(c.Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(profile.ToResponse(p))
}

// DeleteProfile deletes a profile
// DELETE /api/profiles/:id
func (h *Handlers) DeleteProfile(c *fiber.Ctx) error {
	id := kernel.ProfileID(c.Params("id"))
	if id.IsEmpty() {
		return profile.ErrProfileNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteProfile(c.Context(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// RegisterRoutes registers all profile routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/profiles")

	api.Get("/", handlers.ListProfiles)
	api.Post("/", handlers.CreateProfile)
	api.Get("/:id", handlers.GetProfile)
	api.Put("/:id", handlers.UpdateProfile)
	api.Delete("/:id", handlers.DeleteProfile)
}
