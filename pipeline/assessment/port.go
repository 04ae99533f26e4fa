package assessment

import (
	"context"

	"github.com/autocareer/autocareer/pkg/kernel"
)

type Repository interface {
	// UpsertForJob stores an assessment, replacing any existing one for
	// the same posting
	UpsertForJob(ctx context.Context, a *FitAssessment) error

	// GetByJobID retrieves the current assessment for a posting
	GetByJobID(ctx context.Context, jobID kernel.JobID) (*FitAssessment, error)

	// DeleteByJobID removes a posting's assessment
	DeleteByJobID(ctx context.Context, jobID kernel.JobID) error
}
