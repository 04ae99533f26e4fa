package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pkg/errx"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

// JobService provides business operations for job postings
type JobService struct {
	jobRepo job.Repository
	source  job.Source
}

// NewJobService creates a new instance of the job service
func NewJobService(jobRepo job.Repository, source job.Source) *JobService {
	return &JobService{
		jobRepo: jobRepo,
		source:  source,
	}
}

// SearchAndIngest queries the external source and persists its results,
// deduplicating by URL. Postings that fail validation are skipped, not
// fatal.
func (s *JobService) SearchAndIngest(ctx context.Context, req job.SearchJobsRequest) (*job.SearchJobsResponse, error) {
	if req.Query == "" {
		return nil, job.ErrInvalidPosting().WithDetail("field", "query")
	}

	found, err := s.source.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	resp := &job.SearchJobsResponse{Found: len(found)}
	for i := range found {
		p := found[i]
		p.ID = kernel.NewJobID(uuid.NewString())
		now := time.Now()
		p.CreatedAt = now
		p.UpdatedAt = now
		p.Normalize()

		if err := p.Validate(); err != nil {
			logx.Warnf("Skipping invalid posting from source: %v", err)
			continue
		}

		persisted, inserted, err := s.jobRepo.UpsertByURL(ctx, &p)
		if err != nil {
			logx.Warnf("Failed to persist posting %q: %v", p.Title, err)
			continue
		}

		if inserted {
			resp.Ingested++
		} else {
			resp.Refreshed++
		}
		resp.Postings = append(resp.Postings, *persisted)
	}

	return resp, nil
}

// GetJob retrieves a posting by ID
func (s *JobService) GetJob(ctx context.Context, id kernel.JobID) (*job.Posting, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// ListJobs retrieves postings, ranked by fit score when requested
func (s *JobService) ListJobs(ctx context.Context, req job.ListJobsRequest) (*kernel.Paginated[job.PostingWithFit], error) {
	result, err := s.jobRepo.List(ctx, req)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list postings", errx.TypeInternal)
	}
	return result, nil
}

// AdvanceStatus moves a posting forward through the pipeline. Backwards
// moves are ignored.
func (s *JobService) AdvanceStatus(ctx context.Context, id kernel.JobID, to job.Status) error {
	p, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	before := p.Status
	p.Advance(to)
	if p.Status == before {
		return nil
	}

	return s.jobRepo.UpdateStatus(ctx, id, p.Status)
}

// DeleteJob deletes a posting by ID
func (s *JobService) DeleteJob(ctx context.Context, id kernel.JobID) error {
	return s.jobRepo.Delete(ctx, id)
}
