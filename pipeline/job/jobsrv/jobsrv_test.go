package jobsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pkg/kernel"
)

type stubSource struct {
	postings []job.Posting
	err      error
}

func (s *stubSource) Search(ctx context.Context, req job.SearchJobsRequest) ([]job.Posting, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.postings, nil
}

type memJobRepo struct {
	byURL    map[kernel.JobURL]*job.Posting
	byID     map[kernel.JobID]*job.Posting
	statuses map[kernel.JobID]job.Status
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{
		byURL:    make(map[kernel.JobURL]*job.Posting),
		byID:     make(map[kernel.JobID]*job.Posting),
		statuses: make(map[kernel.JobID]job.Status),
	}
}

func (r *memJobRepo) UpsertByURL(ctx context.Context, p *job.Posting) (*job.Posting, bool, error) {
	if p.URL.IsNavigable() {
		if existing, ok := r.byURL[p.URL]; ok {
			existing.Title = p.Title
			existing.Description = p.Description
			return existing, false, nil
		}
	}
	stored := *p
	r.byID[stored.ID] = &stored
	if stored.URL.IsNavigable() {
		r.byURL[stored.URL] = &stored
	}
	return &stored, true, nil
}

func (r *memJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.Posting, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, job.ErrJobNotFound()
	}
	copied := *p
	return &copied, nil
}

func (r *memJobRepo) List(ctx context.Context, req job.ListJobsRequest) (*kernel.Paginated[job.PostingWithFit], error) {
	return kernel.NewPaginated([]job.PostingWithFit{}, 1), nil
}

func (r *memJobRepo) UpdateStatus(ctx context.Context, id kernel.JobID, status job.Status) error {
	r.statuses[id] = status
	if p, ok := r.byID[id]; ok {
		p.Status = status
	}
	return nil
}

func (r *memJobRepo) Delete(ctx context.Context, id kernel.JobID) error { return nil }

func TestSearchAndIngest_TalliesNewAndRefreshed(t *testing.T) {
	repo := newMemJobRepo()
	source := &stubSource{postings: []job.Posting{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://jobs.example.com/1"},
		{Title: "SRE", Company: "Globex", URL: "https://jobs.example.com/2"},
	}}
	svc := NewJobService(repo, source)

	resp, err := svc.SearchAndIngest(context.Background(), job.SearchJobsRequest{Query: "engineer"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Found)
	assert.Equal(t, 2, resp.Ingested)
	assert.Zero(t, resp.Refreshed)
	require.Len(t, resp.Postings, 2)
	assert.NotEmpty(t, resp.Postings[0].ID)

	// The same search again refreshes instead of duplicating
	resp, err = svc.SearchAndIngest(context.Background(), job.SearchJobsRequest{Query: "engineer"})
	require.NoError(t, err)

	assert.Zero(t, resp.Ingested)
	assert.Equal(t, 2, resp.Refreshed)
}

func TestSearchAndIngest_SkipsInvalidPostings(t *testing.T) {
	repo := newMemJobRepo()
	source := &stubSource{postings: []job.Posting{
		{Title: "Backend Engineer", Company: "Acme", URL: "https://jobs.example.com/1"},
		{Title: "", Company: "Globex"}, // missing title
		{Title: "SRE", Company: ""},    // missing company
	}}
	svc := NewJobService(repo, source)

	resp, err := svc.SearchAndIngest(context.Background(), job.SearchJobsRequest{Query: "engineer"})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Found)
	assert.Equal(t, 1, resp.Ingested)
	require.Len(t, resp.Postings, 1)
	assert.Equal(t, "Backend Engineer", resp.Postings[0].Title)
}

func TestSearchAndIngest_RequiresQuery(t *testing.T) {
	svc := NewJobService(newMemJobRepo(), &stubSource{})

	_, err := svc.SearchAndIngest(context.Background(), job.SearchJobsRequest{})

	assert.Error(t, err)
}

func TestAdvanceStatus_IgnoresBackwardsMoves(t *testing.T) {
	repo := newMemJobRepo()
	repo.byID["job-1"] = &job.Posting{ID: "job-1", Status: job.StatusDrafted}
	svc := NewJobService(repo, &stubSource{})

	require.NoError(t, svc.AdvanceStatus(context.Background(), "job-1", job.StatusAnalyzed))
	assert.Equal(t, job.StatusDrafted, repo.byID["job-1"].Status)

	require.NoError(t, svc.AdvanceStatus(context.Background(), "job-1", job.StatusSubmitted))
	assert.Equal(t, job.StatusSubmitted, repo.byID["job-1"].Status)
}
