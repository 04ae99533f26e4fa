package profile

import (
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// CreateProfileRequest creates a new applicant profile
type CreateProfileRequest struct {
	FullName   string       `json:"full_name" validate:"required"`
	Email      kernel.Email `json:"email" validate:"required,email"`
	Phone      string       `json:"phone"`
	LinkedIn   string       `json:"linkedin_url"`
	GitHub     string       `json:"github_url"`
	Portfolio  string       `json:"portfolio_url"`
	Summary    string       `json:"summary"`
	Skills     []string     `json:"skills"`
	Experience string       `json:"experience"`
	Education  string       `json:"education"`
}

// UpdateProfileRequest updates profile fields; nil pointers leave the
// stored value untouched, but a non-nil Skills always replaces the whole
// list
type UpdateProfileRequest struct {
	FullName   *string   `json:"full_name"`
	Email      *string   `json:"email"`
	Phone      *string   `json:"phone"`
	LinkedIn   *string   `json:"linkedin_url"`
	GitHub     *string   `json:"github_url"`
	Portfolio  *string   `json:"portfolio_url"`
	Summary    *string   `json:"summary"`
	Skills     *[]string `json:"skills"`
	Experience *string   `json:"experience"`
	Education  *string   `json:"education"`
}

// ProfileResponse is the API view of a profile
type ProfileResponse struct {
	ID         kernel.ProfileID `json:"id"`
	FullName   string           `json:"full_name"`
	Email      kernel.Email     `json:"email"`
	Phone      string           `json:"phone,omitempty"`
	LinkedIn   string           `json:"linkedin_url,omitempty"`
	GitHub     string           `json:"github_url,omitempty"`
	Portfolio  string           `json:"portfolio_url,omitempty"`
	Summary    string           `json:"summary,omitempty"`
	Skills     []string         `json:"skills"`
	Experience string           `json:"experience,omitempty"`
	Education  string           `json:"education,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToResponse converts an entity to its API view
func ToResponse(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:         p.ID,
		FullName:   p.FullName,
		Email:      p.Email,
		Phone:      p.Phone,
		LinkedIn:   p.LinkedIn,
		GitHub:     p.GitHub,
		Portfolio:  p.Portfolio,
		Summary:    p.Summary,
		Skills:     p.Skills,
		Experience: p.Experience,
		Education:  p.Education,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
