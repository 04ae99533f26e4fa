package orchestrator

import (
	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// RunRequest describes one batch pipeline run
type RunRequest struct {
	ProfileID kernel.ProfileID `json:"profile_id" validate:"required"`
	// JobIDs restricts the run to specific postings; empty means every
	// posting not yet submitted
	JobIDs []kernel.JobID `json:"job_ids"`
	// DryRun stops each submission after evidence capture
	DryRun bool `json:"dry_run"`
	// AutoSubmit lets the run push qualifying applications out without
	// per-job confirmation beyond the safety gate
	AutoSubmit bool `json:"auto_submit"`
	// Concurrency caps parallel analysis; 0 uses the default
	Concurrency int `json:"concurrency"`
}

// RunTask is the queued form of a run request
type RunTask struct {
	RunID   kernel.RunID `json:"run_id"`
	Request RunRequest   `json:"request"`
}

// JobOutcome summarizes what the run did with one posting
type JobOutcome struct {
	JobID     kernel.JobID     `json:"job_id"`
	Title     string           `json:"title"`
	Score     *kernel.FitScore `json:"fit_score,omitempty"`
	Drafted   bool             `json:"drafted"`
	Submitted bool             `json:"submitted"`
	Skipped   string           `json:"skipped,omitempty"`
	Error     string           `json:"error,omitempty"`
}

// RunResult reports a completed batch run
type RunResult struct {
	RunID     kernel.RunID `json:"run_id"`
	Analyzed  int          `json:"analyzed"`
	Drafted   int          `json:"drafted"`
	Submitted int          `json:"submitted"`
	Skipped   int          `json:"skipped"`
	Failed    int          `json:"failed"`
	Outcomes  []JobOutcome `json:"outcomes"`
}

// SubmitRequest triggers a single application submission
type SubmitRequest struct {
	DryRun bool `json:"dry_run"`
}

// SubmitResponse reports one submission attempt
type SubmitResponse struct {
	JobID  kernel.JobID  `json:"job_id"`
	Result submit.Result `json:"result"`
}

// UpdateDraftRequest replaces draft content with a manual revision
type UpdateDraftRequest struct {
	Content string `json:"content" validate:"required"`
}
