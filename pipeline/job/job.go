package job

import (
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// Status tracks how far a posting has travelled through the pipeline
type Status string

const (
	StatusDiscovered Status = "DISCOVERED" // Ingested, not yet scored
	StatusAnalyzed   Status = "ANALYZED"   // Fit assessment exists
	StatusDrafted    Status = "DRAFTED"    // Cover letter draft exists
	StatusSubmitted  Status = "SUBMITTED"  // Application sent
)

// rank orders statuses so progression never regresses
var statusRank = map[Status]int{
	StatusDiscovered: 0,
	StatusAnalyzed:   1,
	StatusDrafted:    2,
	StatusSubmitted:  3,
}

// Posting is one job ad the pipeline may apply to. Postings are unique by
// URL; re-discovery refreshes fields instead of duplicating.
type Posting struct {
	ID          kernel.JobID       `db:"id" json:"id"`
	Title       string             `db:"title" json:"title"`
	Company     string             `db:"company" json:"company"`
	Location    string             `db:"location" json:"location,omitempty"`
	Description string             `db:"description" json:"description"`
	URL         kernel.JobURL      `db:"url" json:"url"`
	Salary      kernel.SalaryRange `db:"-" json:"salary,omitempty"`
	Source      string             `db:"source" json:"source,omitempty"`
	Status      Status             `db:"status" json:"status"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsSubmitted checks if an application has already gone out for this posting
func (p *Posting) IsSubmitted() bool {
	return p.Status == StatusSubmitted
}

// CanSubmit checks whether the posting has a page a browser can open
func (p *Posting) CanSubmit() bool {
	return p.URL.IsNavigable() && !p.IsSubmitted()
}

// Advance moves the posting forward to the given status. Moving backwards
// is a no-op so re-running earlier stages never loses progress.
func (p *Posting) Advance(to Status) {
	if statusRank[to] <= statusRank[p.Status] {
		return
	}
	p.Status = to
	p.UpdatedAt = time.Now()
}

// Normalize fills defaults on an ingested posting
func (p *Posting) Normalize() {
	p.URL = p.URL.OrDefault()
	if p.Status == "" {
		p.Status = StatusDiscovered
	}
}

// Validate checks the minimum fields an ingested posting needs
func (p *Posting) Validate() error {
	if p.Title == "" {
		return ErrInvalidPosting().WithDetail("field", "title")
	}
	if p.Company == "" {
		return ErrInvalidPosting().WithDetail("field", "company")
	}
	return nil
}
