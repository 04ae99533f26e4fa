package job

import (
	"context"

	"github.com/autocareer/autocareer/pkg/kernel"
)

type Repository interface {
	// UpsertByURL inserts a posting or refreshes the stored row sharing
	// its URL, returning the persisted posting. Sentinel-URL postings
	// always insert.
	UpsertByURL(ctx context.Context, p *Posting) (*Posting, bool, error)

	// GetByID retrieves a posting by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Posting, error)

	// List retrieves postings with optional status filter and fit-score
	// ordering
	List(ctx context.Context, req ListJobsRequest) (*kernel.Paginated[PostingWithFit], error)

	// UpdateStatus advances a posting's pipeline status
	UpdateStatus(ctx context.Context, id kernel.JobID, status Status) error

	// Delete deletes a posting by ID
	Delete(ctx context.Context, id kernel.JobID) error
}

// Source produces postings from an external job board
type Source interface {
	// Search finds postings matching the query. Results are not yet
	// persisted and carry no IDs.
	Search(ctx context.Context, req SearchJobsRequest) ([]Posting, error)
}
