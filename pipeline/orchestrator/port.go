package orchestrator

import (
	"context"
	"time"

	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/pipeline/assessment"
	"github.com/autocareer/autocareer/pipeline/draft"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// Analyzer scores profile-to-job fit
type Analyzer interface {
	Assess(ctx context.Context, p *profile.Profile, posting *job.Posting) (*assessment.FitAssessment, error)
	GetByJobID(ctx context.Context, jobID kernel.JobID) (*assessment.FitAssessment, error)
}

// Drafter generates and revises cover letter drafts
type Drafter interface {
	GenerateForJob(ctx context.Context, p *profile.Profile, posting *job.Posting, matchedSkills []string) (*draft.Draft, error)
	GetByJobID(ctx context.Context, jobID kernel.JobID) (*draft.Draft, error)
	EditDraft(ctx context.Context, id kernel.DraftID, content string) (*draft.Draft, error)
	ApproveDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error)
	DiscardDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error)
}

// Submitter executes a browser submission attempt end to end, including
// session lifecycle
type Submitter interface {
	Submit(ctx context.Context, req submit.Request) (submit.Result, error)
}

// JobQueue carries queued pipeline runs between the API and the workers
type JobQueue interface {
	// Enqueue adds a run to the queue
	Enqueue(ctx context.Context, task RunTask) error

	// Dequeue gets a run from the queue, blocking up to timeout. A nil
	// task with nil error means the timeout elapsed with nothing queued.
	Dequeue(ctx context.Context, timeout time.Duration) (*RunTask, error)

	// EnqueueDelayed schedules a run for later processing (for retries)
	EnqueueDelayed(ctx context.Context, task RunTask, delay time.Duration) error

	// MoveDelayedToReady moves delayed runs that are due to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)
}
