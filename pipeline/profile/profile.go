package profile

import (
	"strings"
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// Profile is the applicant identity every pipeline run draws from
type Profile struct {
	ID        kernel.ProfileID `db:"id" json:"id"`
	FullName  string           `db:"full_name" json:"full_name"`
	Email     kernel.Email     `db:"email" json:"email"`
	Phone     string           `db:"phone" json:"phone,omitempty"`
	LinkedIn  string           `db:"linkedin_url" json:"linkedin_url,omitempty"`
	GitHub    string           `db:"github_url" json:"github_url,omitempty"`
	Portfolio string           `db:"portfolio_url" json:"portfolio_url,omitempty"`
	Summary   string           `db:"summary" json:"summary,omitempty"`
	Skills    []string         `db:"skills" json:"skills"`
	// Experience is free text describing work history; it feeds both
	// scoring and letter generation
	Experience string           `db:"experience" json:"experience,omitempty"`
	Education  string           `db:"education" json:"education,omitempty"`
	Embedding  kernel.Embedding `db:"embedding" json:"-"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// ReplaceSkills swaps the full skill list. Skills are stored lowercase
// and deduplicated; partial merges are not supported.
func (p *Profile) ReplaceSkills(skills []string) {
	seen := make(map[string]bool, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		normalized = append(normalized, s)
	}
	p.Skills = normalized
	p.UpdatedAt = time.Now()
}

// HasSkill checks for a skill, case-insensitively
func (p *Profile) HasSkill(skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// NarrativeText concatenates the profile's prose sections for embedding
// and letter generation
func (p *Profile) NarrativeText() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Summary, p.Experience, p.Education} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(p.Skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(p.Skills, ", "))
	}
	return strings.Join(parts, "\n\n")
}

// Validate checks the minimum fields a pipeline run needs
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return ErrInvalidProfile().WithDetail("field", "full_name")
	}
	if !strings.Contains(p.Email.String(), "@") {
		return ErrInvalidProfile().WithDetail("field", "email")
	}
	return nil
}
