package orchestratorsrv

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocareer/autocareer/internal/automation/fields"
	"github.com/autocareer/autocareer/internal/automation/submit"
	"github.com/autocareer/autocareer/pipeline/assessment"
	"github.com/autocareer/autocareer/pipeline/audit"
	"github.com/autocareer/autocareer/pipeline/draft"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/orchestrator"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// ============================================================================
// Stubs
// ============================================================================

type memProfileRepo struct {
	profiles map[kernel.ProfileID]*profile.Profile
}

func (r *memProfileRepo) Create(ctx context.Context, p *profile.Profile) error { return nil }
func (r *memProfileRepo) Update(ctx context.Context, id kernel.ProfileID, p *profile.Profile) error {
	return nil
}
func (r *memProfileRepo) GetByID(ctx context.Context, id kernel.ProfileID) (*profile.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound()
	}
	return p, nil
}
func (r *memProfileRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	return kernel.NewPaginated([]profile.Profile{}, 1), nil
}
func (r *memProfileRepo) UpdateEmbedding(ctx context.Context, id kernel.ProfileID, embedding kernel.Embedding) error {
	return nil
}
func (r *memProfileRepo) Delete(ctx context.Context, id kernel.ProfileID) error { return nil }

type memJobRepo struct {
	mu       sync.Mutex
	postings map[kernel.JobID]*job.Posting
}

func (r *memJobRepo) UpsertByURL(ctx context.Context, p *job.Posting) (*job.Posting, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postings[p.ID] = p
	return p, true, nil
}
func (r *memJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postings[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	copied := *p
	return &copied, nil
}
func (r *memJobRepo) List(ctx context.Context, req job.ListJobsRequest) (*kernel.Paginated[job.PostingWithFit], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.PostingWithFit, 0, len(r.postings))
	for _, p := range r.postings {
		items = append(items, job.PostingWithFit{Posting: *p})
	}
	return kernel.NewPaginated(items, 1), nil
}
func (r *memJobRepo) UpdateStatus(ctx context.Context, id kernel.JobID, status job.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.postings[id]
	if !ok {
		return job.ErrJobNotFound()
	}
	p.Status = status
	return nil
}
func (r *memJobRepo) Delete(ctx context.Context, id kernel.JobID) error { return nil }

func (r *memJobRepo) status(id kernel.JobID) job.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.postings[id].Status
}

type stubAnalyzer struct {
	mu          sync.Mutex
	score       kernel.FitScore
	method      kernel.ScoreMethod
	assessments map[kernel.JobID]*assessment.FitAssessment
	assessCalls int
}

func (a *stubAnalyzer) Assess(ctx context.Context, p *profile.Profile, posting *job.Posting) (*assessment.FitAssessment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.assessCalls++
	fa := &assessment.FitAssessment{
		ID:            kernel.AssessmentID(fmt.Sprintf("assessment-%d", a.assessCalls)),
		JobID:         posting.ID,
		ProfileID:     p.ID,
		Score:         a.score,
		Method:        a.method,
		MatchedSkills: []string{"python"},
		CreatedAt:     time.Now(),
	}
	a.assessments[posting.ID] = fa
	return fa, nil
}

func (a *stubAnalyzer) GetByJobID(ctx context.Context, jobID kernel.JobID) (*assessment.FitAssessment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fa, ok := a.assessments[jobID]
	if !ok {
		return nil, assessment.ErrAssessmentNotFound()
	}
	return fa, nil
}

type stubDrafter struct {
	mu        sync.Mutex
	drafts    map[kernel.JobID]*draft.Draft
	generated int
}

func (d *stubDrafter) GenerateForJob(ctx context.Context, p *profile.Profile, posting *job.Posting, matchedSkills []string) (*draft.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generated++
	dr := &draft.Draft{
		ID:        kernel.DraftID(fmt.Sprintf("draft-%d", d.generated)),
		JobID:     posting.ID,
		ProfileID: p.ID,
		Content:   "Dear hiring team,",
		Method:    kernel.GenerationMethodTemplate,
		Status:    draft.StatusDraft,
	}
	d.drafts[posting.ID] = dr
	return dr, nil
}

func (d *stubDrafter) GetByJobID(ctx context.Context, jobID kernel.JobID) (*draft.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dr, ok := d.drafts[jobID]
	if !ok {
		return nil, draft.ErrDraftNotFound()
	}
	return dr, nil
}

func (d *stubDrafter) EditDraft(ctx context.Context, id kernel.DraftID, content string) (*draft.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dr := range d.drafts {
		if dr.ID == id {
			if err := dr.Edit(content); err != nil {
				return nil, err
			}
			return dr, nil
		}
	}
	return nil, draft.ErrDraftNotFound()
}

func (d *stubDrafter) ApproveDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dr := range d.drafts {
		if dr.ID == id {
			if err := dr.Approve(); err != nil {
				return nil, err
			}
			return dr, nil
		}
	}
	return nil, draft.ErrDraftNotFound()
}

func (d *stubDrafter) DiscardDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, dr := range d.drafts {
		if dr.ID == id {
			dr.Discard()
			return dr, nil
		}
	}
	return nil, draft.ErrDraftNotFound()
}

type stubSubmitter struct {
	mu       sync.Mutex
	result   submit.Result
	requests []submit.Request
}

func (s *stubSubmitter) Submit(ctx context.Context, req submit.Request) (submit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return s.result, nil
}

type memAuditStore struct {
	mu      sync.Mutex
	entries []audit.LogEntry
}

func (s *memAuditStore) Append(ctx context.Context, entry *audit.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memAuditStore) List(ctx context.Context, filter audit.ListFilter) (*kernel.Paginated[audit.LogEntry], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return kernel.NewPaginated(append([]audit.LogEntry{}, s.entries...), 1), nil
}

func (s *memAuditStore) ListChain(ctx context.Context) ([]audit.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]audit.LogEntry{}, s.entries...), nil
}

func (s *memAuditStore) count(action audit.Action, status audit.EntryStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.Action == action && e.Status == status {
			n++
		}
	}
	return n
}

type memQueue struct {
	tasks []orchestrator.RunTask
}

func (q *memQueue) Enqueue(ctx context.Context, task orchestrator.RunTask) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *memQueue) Dequeue(ctx context.Context, timeout time.Duration) (*orchestrator.RunTask, error) {
	if len(q.tasks) == 0 {
		return nil, nil
	}
	task := q.tasks[0]
	q.tasks = q.tasks[1:]
	return &task, nil
}

func (q *memQueue) EnqueueDelayed(ctx context.Context, task orchestrator.RunTask, delay time.Duration) error {
	return nil
}

func (q *memQueue) MoveDelayedToReady(ctx context.Context) (int, error) { return 0, nil }

// ============================================================================
// Fixture
// ============================================================================

type fixture struct {
	svc       *PipelineService
	profiles  *memProfileRepo
	jobs      *memJobRepo
	analyzer  *stubAnalyzer
	drafter   *stubDrafter
	submitter *stubSubmitter
	auditLog  *memAuditStore
	queue     *memQueue
}

func newFixture(score kernel.FitScore, postings ...*job.Posting) *fixture {
	f := &fixture{
		profiles: &memProfileRepo{profiles: map[kernel.ProfileID]*profile.Profile{
			"prof-1": {
				ID:       "prof-1",
				FullName: "Dana Smith",
				Email:    "dana@example.com",
				Phone:    "+1 555 0100",
				Skills:   []string{"python"},
			},
		}},
		jobs:      &memJobRepo{postings: make(map[kernel.JobID]*job.Posting)},
		analyzer:  &stubAnalyzer{score: score, method: kernel.ScoreMethodLLM, assessments: make(map[kernel.JobID]*assessment.FitAssessment)},
		drafter:   &stubDrafter{drafts: make(map[kernel.JobID]*draft.Draft)},
		submitter: &stubSubmitter{result: submit.Result{Status: submit.StatusSubmitted, FieldsDetected: 3, FieldsFilled: 3}},
		auditLog:  &memAuditStore{},
		queue:     &memQueue{},
	}
	for _, p := range postings {
		f.jobs.postings[p.ID] = p
	}
	f.svc = NewPipelineService(f.profiles, f.jobs, f.analyzer, f.drafter, f.submitter, f.auditLog, f.queue)
	return f
}

func posting(id string, status job.Status, url string) *job.Posting {
	return &job.Posting{
		ID:      kernel.JobID(id),
		Title:   "Backend Engineer",
		Company: "Acme",
		URL:     kernel.JobURL(url),
		Status:  status,
	}
}

// ============================================================================
// Single-Job Operations
// ============================================================================

func TestAnalyzeFit_RecordsAuditAndAdvancesStatus(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	a, err := f.svc.AnalyzeFit(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	assert.Equal(t, kernel.FitScore(80), a.Score)
	assert.Equal(t, job.StatusAnalyzed, f.jobs.status("job-1"))
	assert.Equal(t, 1, f.auditLog.count(audit.ActionAnalyze, audit.EntrySuccess))
}

func TestAnalyzeFit_KeywordMethodLogsFallback(t *testing.T) {
	f := newFixture(60, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))
	f.analyzer.method = kernel.ScoreMethodKeyword

	_, err := f.svc.AnalyzeFit(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.auditLog.count(audit.ActionAnalyze, audit.EntryFallback))
	assert.Zero(t, f.auditLog.count(audit.ActionAnalyze, audit.EntrySuccess))
}

func TestGenerateDraft_AnalyzesFirstWhenNoAssessmentExists(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	d, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	assert.NotEmpty(t, d.Content)
	assert.Equal(t, 1, f.analyzer.assessCalls)
	assert.Equal(t, job.StatusDrafted, f.jobs.status("job-1"))
}

func TestGenerateDraft_ReusesExistingAssessment(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	_, err := f.svc.AnalyzeFit(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)
	_, err = f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.analyzer.assessCalls)
}

func TestGenerateDraft_TwiceKeepsOneDraftAndTwoAuditEntries(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	first, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)
	second, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	// Regeneration replaced the draft rather than stacking a second one
	stored, err := f.drafter.GetByJobID(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
	assert.Len(t, f.drafter.drafts, 1)

	// Both generations left their mark in the log
	assert.Equal(t, 2, f.auditLog.count(audit.ActionDraft, audit.EntryFallback))
}

func TestSubmitApplication_HappyPath(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDrafted, "https://jobs.example.com/1"))

	_, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	resp, err := f.svc.SubmitApplication(context.Background(), "job-1", false)
	require.NoError(t, err)

	assert.Equal(t, submit.StatusSubmitted, resp.Result.Status)
	assert.Equal(t, job.StatusSubmitted, f.jobs.status("job-1"))
	assert.Equal(t, 1, f.auditLog.count(audit.ActionSubmit, audit.EntrySuccess))

	require.Len(t, f.submitter.requests, 1)
	req := f.submitter.requests[0]
	assert.Equal(t, "https://jobs.example.com/1", req.JobURL)
	assert.Equal(t, "job-1.png", req.ScreenshotKey)
	assert.Equal(t, "Dana Smith", req.Values[fields.RoleName])
	assert.Equal(t, "Dear hiring team,", req.Values[fields.RoleCoverLetter])
	// Optional roles appear only when the profile has them
	assert.Equal(t, "+1 555 0100", req.Values[fields.RolePhone])
	assert.NotContains(t, req.Values, fields.RoleLinkedIn)
}

func TestSubmitApplication_RejectsAlreadySubmitted(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusSubmitted, "https://jobs.example.com/1"))

	_, err := f.svc.SubmitApplication(context.Background(), "job-1", false)

	require.Error(t, err)
	assert.Empty(t, f.submitter.requests)
}

func TestSubmitApplication_RejectsSentinelURL(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDrafted, "#"))

	_, err := f.svc.SubmitApplication(context.Background(), "job-1", false)

	require.Error(t, err)
	assert.Empty(t, f.submitter.requests)
	assert.Equal(t, 1, f.auditLog.count(audit.ActionSubmit, audit.EntrySkipped))
}

func TestSubmitApplication_RejectsDiscardedDraft(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDrafted, "https://jobs.example.com/1"))

	d, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)
	d.Discard()

	_, err = f.svc.SubmitApplication(context.Background(), "job-1", false)

	require.Error(t, err)
	assert.Empty(t, f.submitter.requests)
}

func TestSubmitApplication_DryRunDoesNotAdvanceStatus(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDrafted, "https://jobs.example.com/1"))
	f.submitter.result = submit.Result{Status: submit.StatusDryRun, FieldsDetected: 3, FieldsFilled: 3}

	_, err := f.svc.GenerateDraft(context.Background(), "prof-1", "job-1")
	require.NoError(t, err)

	resp, err := f.svc.SubmitApplication(context.Background(), "job-1", true)
	require.NoError(t, err)

	assert.Equal(t, submit.StatusDryRun, resp.Result.Status)
	assert.Equal(t, job.StatusDrafted, f.jobs.status("job-1"))

	require.Len(t, f.submitter.requests, 1)
	assert.True(t, f.submitter.requests[0].DryRun)
}

// ============================================================================
// Batch Runs
// ============================================================================

func TestEnqueueRun_QueuesTaskAndLogsIt(t *testing.T) {
	f := newFixture(80)

	runID, err := f.svc.EnqueueRun(context.Background(), orchestrator.RunRequest{ProfileID: "prof-1"})
	require.NoError(t, err)

	assert.False(t, runID.IsEmpty())
	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, runID, f.queue.tasks[0].RunID)
	assert.Equal(t, 1, f.auditLog.count(audit.ActionRun, audit.EntrySuccess))
}

func TestEnqueueRun_RejectsMissingProfile(t *testing.T) {
	f := newFixture(80)

	_, err := f.svc.EnqueueRun(context.Background(), orchestrator.RunRequest{})

	require.Error(t, err)
	assert.Empty(t, f.queue.tasks)
}

func TestExecuteRun_FullPipelineWithAutoSubmit(t *testing.T) {
	f := newFixture(80,
		posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"),
		posting("job-2", job.StatusDiscovered, "https://jobs.example.com/2"),
	)

	result, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID:   "run-1",
		Request: orchestrator.RunRequest{ProfileID: "prof-1", AutoSubmit: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Analyzed)
	assert.Equal(t, 2, result.Drafted)
	assert.Equal(t, 2, result.Submitted)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Failed)

	assert.Equal(t, job.StatusSubmitted, f.jobs.status("job-1"))
	assert.Equal(t, job.StatusSubmitted, f.jobs.status("job-2"))
	assert.Len(t, f.submitter.requests, 2)
}

func TestExecuteRun_WithoutAutoSubmitStopsAtDraft(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	result, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID:   "run-1",
		Request: orchestrator.RunRequest{ProfileID: "prof-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Drafted)
	assert.Zero(t, result.Submitted)
	assert.Empty(t, f.submitter.requests)
	assert.Equal(t, job.StatusDrafted, f.jobs.status("job-1"))
}

func TestExecuteRun_BelowThresholdSkipsDrafting(t *testing.T) {
	f := newFixture(30, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	result, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID:   "run-1",
		Request: orchestrator.RunRequest{ProfileID: "prof-1", AutoSubmit: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Analyzed)
	assert.Zero(t, result.Drafted)
	assert.Zero(t, result.Submitted)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, f.drafter.generated)
	assert.Equal(t, 1, f.auditLog.count(audit.ActionDraft, audit.EntrySkipped))
}

func TestExecuteRun_SubmittedPostingsAreSkippedOnReentry(t *testing.T) {
	f := newFixture(80,
		posting("job-1", job.StatusSubmitted, "https://jobs.example.com/1"),
		posting("job-2", job.StatusDiscovered, "https://jobs.example.com/2"),
	)

	result, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID: "run-1",
		Request: orchestrator.RunRequest{
			ProfileID:  "prof-1",
			JobIDs:     []kernel.JobID{"job-1", "job-2"},
			AutoSubmit: true,
		},
	})
	require.NoError(t, err)

	// The already-submitted posting was never re-analyzed or re-submitted
	assert.Equal(t, 1, result.Analyzed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, 1, f.analyzer.assessCalls)
	assert.Len(t, f.submitter.requests, 1)
	assert.Equal(t, "https://jobs.example.com/2", f.submitter.requests[0].JobURL)
	assert.Equal(t, 1, f.auditLog.count(audit.ActionAnalyze, audit.EntrySkipped))
}

func TestExecuteRun_EmptyJobIDsSelectsUnsubmittedPostings(t *testing.T) {
	f := newFixture(80,
		posting("job-1", job.StatusSubmitted, "https://jobs.example.com/1"),
		posting("job-2", job.StatusDiscovered, "https://jobs.example.com/2"),
		posting("job-3", job.StatusAnalyzed, "https://jobs.example.com/3"),
	)

	result, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID:   "run-1",
		Request: orchestrator.RunRequest{ProfileID: "prof-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Analyzed)
	assert.Len(t, result.Outcomes, 2)
}

func TestExecuteRun_RecordsRunSummaryEntry(t *testing.T) {
	f := newFixture(80, posting("job-1", job.StatusDiscovered, "https://jobs.example.com/1"))

	_, err := f.svc.ExecuteRun(context.Background(), orchestrator.RunTask{
		RunID:   "run-1",
		Request: orchestrator.RunRequest{ProfileID: "prof-1"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.auditLog.count(audit.ActionRun, audit.EntrySuccess))
}
