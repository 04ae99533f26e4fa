package draft

import (
	"context"

	"github.com/autocareer/autocareer/pkg/kernel"
)

type Repository interface {
	// ReplaceForJob stores a draft, discarding any previous draft for
	// the same posting
	ReplaceForJob(ctx context.Context, d *Draft) error

	// Update persists edits to an existing draft
	Update(ctx context.Context, id kernel.DraftID, d *Draft) error

	// GetByID retrieves a draft by ID
	GetByID(ctx context.Context, id kernel.DraftID) (*Draft, error)

	// GetByJobID retrieves the current draft for a posting
	GetByJobID(ctx context.Context, jobID kernel.JobID) (*Draft, error)
}
