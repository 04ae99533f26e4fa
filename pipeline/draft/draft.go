package draft

import (
	"strings"
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// Status is the review state of a cover letter draft
type Status string

const (
	StatusDraft     Status = "DRAFT"     // Generated, awaiting review
	StatusApproved  Status = "APPROVED"  // Cleared for submission
	StatusDiscarded Status = "DISCARDED" // Rejected by the user
)

// Draft is a generated cover letter for one posting. A posting keeps one
// draft; regenerating replaces it.
type Draft struct {
	ID        kernel.DraftID          `db:"id" json:"id"`
	JobID     kernel.JobID            `db:"job_id" json:"job_id"`
	ProfileID kernel.ProfileID        `db:"profile_id" json:"profile_id"`
	Content   string                  `db:"content" json:"content"`
	Method    kernel.GenerationMethod `db:"method" json:"method"`
	Status    Status                  `db:"status" json:"status"`
	EditedAt  *time.Time              `db:"edited_at" json:"edited_at,omitempty"`
	CreatedAt time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt time.Time               `db:"updated_at" json:"updated_at"`
}

// WordCount counts whitespace-separated words in the letter
func (d *Draft) WordCount() int {
	return len(strings.Fields(d.Content))
}

// Edit replaces the letter body and records the manual intervention
func (d *Draft) Edit(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyDraft()
	}
	now := time.Now()
	d.Content = content
	d.EditedAt = &now
	d.UpdatedAt = now
	return nil
}

// Approve clears the draft for submission
func (d *Draft) Approve() error {
	if d.Status == StatusDiscarded {
		return ErrDraftDiscarded()
	}
	d.Status = StatusApproved
	d.UpdatedAt = time.Now()
	return nil
}

// Discard rejects the draft
func (d *Draft) Discard() {
	d.Status = StatusDiscarded
	d.UpdatedAt = time.Now()
}

// IsUsable reports whether the draft can back a submission
func (d *Draft) IsUsable() bool {
	return d.Status != StatusDiscarded && strings.TrimSpace(d.Content) != ""
}
