// Package orchestratorsrv sequences the application pipeline: score a
// posting, gate on the fit threshold, draft a letter, and submit through
// the browser. Every stage leaves exactly one audit entry, and every
// stage is safe to re-run.
package orchestratorsrv

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/autocareer/autocareer/internal/automation/fields"
	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/pipeline/assessment"
	"github.com/autocareer/autocareer/pipeline/audit"
	"github.com/autocareer/autocareer/pipeline/draft"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/orchestrator"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/errx"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

// DefaultConcurrency caps parallel analysis inside one run
const DefaultConcurrency = 4

// PipelineService coordinates the stages of the application pipeline
type PipelineService struct {
	profileRepo profile.Repository
	jobRepo     job.Repository
	analyzer    orchestrator.Analyzer
	drafter     orchestrator.Drafter
	submitter   orchestrator.Submitter
	auditStore  audit.Store
	queue       orchestrator.JobQueue
}

// NewPipelineService creates a new instance of the pipeline service
func NewPipelineService(
	profileRepo profile.Repository,
	jobRepo job.Repository,
	analyzer orchestrator.Analyzer,
	drafter orchestrator.Drafter,
	submitter orchestrator.Submitter,
	auditStore audit.Store,
	queue orchestrator.JobQueue,
) *PipelineService {
	return &PipelineService{
		profileRepo: profileRepo,
		jobRepo:     jobRepo,
		analyzer:    analyzer,
		drafter:     drafter,
		submitter:   submitter,
		auditStore:  auditStore,
		queue:       queue,
	}
}

// ============================================================================
// Single-Job Operations
// ============================================================================

// AnalyzeFit scores one posting against a profile. Re-analysis replaces
// the stored assessment.
func (s *PipelineService) AnalyzeFit(ctx context.Context, profileID kernel.ProfileID, jobID kernel.JobID) (*assessment.FitAssessment, error) {
	p, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	a, err := s.analyzer.Assess(ctx, p, posting)
	if err != nil {
		s.log(ctx, "", jobID, audit.ActionAnalyze, audit.EntryFailure, err.Error())
		return nil, err
	}

	status := audit.EntrySuccess
	if a.Method == kernel.ScoreMethodKeyword {
		status = audit.EntryFallback
	}
	s.log(ctx, "", jobID, audit.ActionAnalyze, status,
		fmt.Sprintf("score=%.1f method=%s", float64(a.Score), a.Method))

	s.advance(ctx, jobID, job.StatusAnalyzed)
	return a, nil
}

// GenerateDraft writes a cover letter draft for one posting, analyzing
// first if no assessment exists yet
func (s *PipelineService) GenerateDraft(ctx context.Context, profileID kernel.ProfileID, jobID kernel.JobID) (*draft.Draft, error) {
	p, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	a, err := s.analyzer.GetByJobID(ctx, jobID)
	if err != nil {
		if !errx.IsType(err, errx.TypeNotFound) {
			return nil, err
		}
		a, err = s.AnalyzeFit(ctx, profileID, jobID)
		if err != nil {
			return nil, err
		}
	}

	d, err := s.drafter.GenerateForJob(ctx, p, posting, a.MatchedSkills)
	if err != nil {
		s.log(ctx, "", jobID, audit.ActionDraft, audit.EntryFailure, err.Error())
		return nil, err
	}

	status := audit.EntrySuccess
	if d.Method == kernel.GenerationMethodTemplate {
		status = audit.EntryFallback
	}
	s.log(ctx, "", jobID, audit.ActionDraft, status,
		fmt.Sprintf("method=%s words=%d", d.Method, d.WordCount()))

	s.advance(ctx, jobID, job.StatusDrafted)
	return d, nil
}

// UpdateDraft applies a manual revision to a draft
func (s *PipelineService) UpdateDraft(ctx context.Context, draftID kernel.DraftID, content string) (*draft.Draft, error) {
	d, err := s.drafter.EditDraft(ctx, draftID, content)
	if err != nil {
		return nil, err
	}

	s.log(ctx, "", d.JobID, audit.ActionDraft, audit.EntrySuccess,
		fmt.Sprintf("manual edit, words=%d", d.WordCount()))
	return d, nil
}

// ApproveDraft clears a draft for submission
func (s *PipelineService) ApproveDraft(ctx context.Context, draftID kernel.DraftID) (*draft.Draft, error) {
	d, err := s.drafter.ApproveDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, "", d.JobID, audit.ActionDraft, audit.EntrySuccess, "draft approved")
	return d, nil
}

// DiscardDraft rejects a draft so it can never be submitted
func (s *PipelineService) DiscardDraft(ctx context.Context, draftID kernel.DraftID) (*draft.Draft, error) {
	d, err := s.drafter.DiscardDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	s.log(ctx, "", d.JobID, audit.ActionDraft, audit.EntrySuccess, "draft discarded")
	return d, nil
}

// SubmitApplication fills and submits the application form for one
// posting using its current draft
func (s *PipelineService) SubmitApplication(ctx context.Context, jobID kernel.JobID, dryRun bool) (*orchestrator.SubmitResponse, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if posting.IsSubmitted() {
		return nil, orchestrator.ErrAlreadySubmitted().WithDetail("job_id", jobID.String())
	}
	if !posting.URL.IsNavigable() {
		s.log(ctx, "", jobID, audit.ActionSubmit, audit.EntrySkipped, "no navigable application url")
		return nil, job.ErrNotSubmittable().WithDetail("url", posting.URL.String())
	}

	d, err := s.drafter.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, orchestrator.ErrNoUsableDraft().WithCause(err)
	}
	if !d.IsUsable() {
		return nil, orchestrator.ErrNoUsableDraft().WithDetail("status", string(d.Status))
	}

	p, err := s.profileRepo.GetByID(ctx, d.ProfileID)
	if err != nil {
		return nil, err
	}

	result, err := s.submitter.Submit(ctx, submit.Request{
		JobURL:        posting.URL.String(),
		Values:        formValues(p, d),
		DryRun:        dryRun,
		ScreenshotKey: fmt.Sprintf("%s.png", jobID.String()),
	})
	if err != nil {
		s.log(ctx, "", jobID, audit.ActionSubmit, audit.EntryFailure, err.Error())
		return nil, errx.Wrap(err, "submission failed", errx.TypeExternal)
	}

	s.log(ctx, "", jobID, audit.ActionSubmit, submissionEntryStatus(result.Status),
		fmt.Sprintf("status=%s detected=%d filled=%d screenshot=%s",
			result.Status, result.FieldsDetected, result.FieldsFilled, result.ScreenshotPath))

	if result.Status == submit.StatusSubmitted {
		s.advance(ctx, jobID, job.StatusSubmitted)
	}

	return &orchestrator.SubmitResponse{JobID: jobID, Result: result}, nil
}

// ============================================================================
// Batch Runs
// ============================================================================

// EnqueueRun queues a batch run for asynchronous execution and returns
// its run ID
func (s *PipelineService) EnqueueRun(ctx context.Context, req orchestrator.RunRequest) (kernel.RunID, error) {
	if req.ProfileID.IsEmpty() {
		return "", orchestrator.ErrInvalidRunRequest().WithDetail("field", "profile_id")
	}

	runID := kernel.NewRunID(uuid.NewString())
	task := orchestrator.RunTask{RunID: runID, Request: req}

	if err := s.queue.Enqueue(ctx, task); err != nil {
		return "", orchestrator.ErrRunNotQueued().WithCause(err)
	}

	s.log(ctx, runID, "", audit.ActionRun, audit.EntrySuccess, "run queued")
	return runID, nil
}

// ExecuteRun walks every selected posting through analyze, threshold
// gate, draft, and (optionally) submit. Analysis runs concurrently;
// submission is serialized because it owns the browser.
func (s *PipelineService) ExecuteRun(ctx context.Context, task orchestrator.RunTask) (*orchestrator.RunResult, error) {
	req := task.Request
	if req.ProfileID.IsEmpty() {
		return nil, orchestrator.ErrInvalidRunRequest().WithDetail("field", "profile_id")
	}

	p, err := s.profileRepo.GetByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	postings, err := s.selectPostings(ctx, req.JobIDs)
	if err != nil {
		return nil, err
	}

	result := &orchestrator.RunResult{RunID: task.RunID}
	outcomes := make([]orchestrator.JobOutcome, len(postings))

	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Stage 1: analyze and draft in parallel
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range postings {
		i := i
		g.Go(func() error {
			outcomes[i] = s.runScoringStages(gctx, task.RunID, p, &postings[i], req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Stage 2: submit sequentially
	for i := range postings {
		outcome := &outcomes[i]
		if outcome.Error != "" || outcome.Skipped != "" || !outcome.Drafted {
			continue
		}
		if !req.AutoSubmit && !req.DryRun {
			continue
		}

		resp, err := s.SubmitApplication(ctx, postings[i].ID, req.DryRun)
		if err != nil {
			outcome.Error = err.Error()
			continue
		}
		outcome.Submitted = resp.Result.Status == submit.StatusSubmitted
	}

	// Tally
	for i := range outcomes {
		o := outcomes[i]
		if o.Error != "" {
			result.Failed++
		}
		if o.Skipped != "" {
			result.Skipped++
		}
		if o.Score != nil {
			result.Analyzed++
		}
		if o.Drafted {
			result.Drafted++
		}
		if o.Submitted {
			result.Submitted++
		}
	}
	result.Outcomes = outcomes

	s.log(ctx, task.RunID, "", audit.ActionRun, audit.EntrySuccess,
		fmt.Sprintf("analyzed=%d drafted=%d submitted=%d skipped=%d failed=%d",
			result.Analyzed, result.Drafted, result.Submitted, result.Skipped, result.Failed))

	return result, nil
}

// runScoringStages analyzes one posting and drafts a letter when the
// score clears the threshold
func (s *PipelineService) runScoringStages(ctx context.Context, runID kernel.RunID, p *profile.Profile, posting *job.Posting, req orchestrator.RunRequest) orchestrator.JobOutcome {
	outcome := orchestrator.JobOutcome{JobID: posting.ID, Title: posting.Title}

	// Re-entry guard: submitted postings are final
	if posting.IsSubmitted() {
		outcome.Skipped = "already submitted"
		s.log(ctx, runID, posting.ID, audit.ActionAnalyze, audit.EntrySkipped, "already submitted")
		return outcome
	}

	a, err := s.AnalyzeFit(ctx, p.ID, posting.ID)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Score = &a.Score

	if !a.MeetsThreshold() {
		outcome.Skipped = fmt.Sprintf("score %.1f below threshold", float64(a.Score))
		s.log(ctx, runID, posting.ID, audit.ActionDraft, audit.EntrySkipped, outcome.Skipped)
		return outcome
	}

	if _, err := s.GenerateDraft(ctx, p.ID, posting.ID); err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.Drafted = true
	return outcome
}

// selectPostings resolves the run's working set
func (s *PipelineService) selectPostings(ctx context.Context, jobIDs []kernel.JobID) ([]job.Posting, error) {
	if len(jobIDs) > 0 {
		postings := make([]job.Posting, 0, len(jobIDs))
		for _, id := range jobIDs {
			posting, err := s.jobRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			postings = append(postings, *posting)
		}
		return postings, nil
	}

	listed, err := s.jobRepo.List(ctx, job.ListJobsRequest{
		Pagination: kernel.PaginationOptions{Page: 1, PageSize: kernel.MaxPageSize},
	})
	if err != nil {
		return nil, err
	}

	postings := make([]job.Posting, 0, len(listed.Items))
	for _, item := range listed.Items {
		if !item.IsSubmitted() {
			postings = append(postings, item.Posting)
		}
	}
	return postings, nil
}

// ============================================================================
// Helpers
// ============================================================================

// formValues maps profile data and the draft letter onto form roles
func formValues(p *profile.Profile, d *draft.Draft) map[fields.Role]string {
	values := map[fields.Role]string{
		fields.RoleName:        p.FullName,
		fields.RoleEmail:       p.Email.String(),
		fields.RoleCoverLetter: d.Content,
	}
	if p.Phone != "" {
		values[fields.RolePhone] = p.Phone
	}
	if p.LinkedIn != "" {
		values[fields.RoleLinkedIn] = p.LinkedIn
	}
	if p.GitHub != "" {
		values[fields.RoleGitHub] = p.GitHub
	}
	if p.Portfolio != "" {
		values[fields.RolePortfolio] = p.Portfolio
	}
	return values
}

func submissionEntryStatus(status submit.Status) audit.EntryStatus {
	switch status {
	case submit.StatusSubmitted, submit.StatusDryRun:
		return audit.EntrySuccess
	case submit.StatusAborted:
		return audit.EntryAborted
	case submit.StatusManualRequired:
		return audit.EntrySkipped
	default:
		return audit.EntryFailure
	}
}

// log appends an audit entry; audit failures are logged, never fatal to
// the pipeline itself
func (s *PipelineService) log(ctx context.Context, runID kernel.RunID, jobID kernel.JobID, action audit.Action, status audit.EntryStatus, detail string) {
	entry := &audit.LogEntry{
		RunID:  runID,
		JobID:  jobID,
		Action: action,
		Status: status,
		Detail: detail,
	}
	if err := s.auditStore.Append(ctx, entry); err != nil {
		logx.Errorf("Failed to append audit entry (%s/%s): %v", action, status, err)
	}
}

// advance moves a posting's status forward, logging failures only
func (s *PipelineService) advance(ctx context.Context, jobID kernel.JobID, to job.Status) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		logx.Warnf("Failed to reload posting %s for status advance: %v", jobID, err)
		return
	}
	before := posting.Status
	posting.Advance(to)
	if posting.Status == before {
		return
	}
	if err := s.jobRepo.UpdateStatus(ctx, jobID, posting.Status); err != nil {
		logx.Warnf("Failed to advance posting %s to %s: %v", jobID, to, err)
	}
}
