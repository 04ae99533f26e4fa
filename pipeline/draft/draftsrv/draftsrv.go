package draftsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autocareer/autocareer/pipeline/draft"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/errx"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// DraftService provides business operations for cover letter drafts
type DraftService struct {
	draftRepo draft.Repository
	generator *Generator
}

// NewDraftService creates a new instance of the draft service
func NewDraftService(draftRepo draft.Repository, generator *Generator) *DraftService {
	return &DraftService{
		draftRepo: draftRepo,
		generator: generator,
	}
}

// GenerateForJob writes a fresh draft for the posting, replacing any
// earlier draft. The latest draft is the only one that counts.
func (s *DraftService) GenerateForJob(ctx context.Context, p *profile.Profile, posting *job.Posting, matchedSkills []string) (*draft.Draft, error) {
	letter := s.generator.Generate(ctx, p, posting, matchedSkills)

	now := time.Now()
	d := &draft.Draft{
		ID:        kernel.NewDraftID(uuid.NewString()),
		JobID:     posting.ID,
		ProfileID: p.ID,
		Content:   letter.Content,
		Method:    letter.Method,
		Status:    draft.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.draftRepo.ReplaceForJob(ctx, d); err != nil {
		return nil, errx.Wrap(err, "failed to store draft", errx.TypeInternal)
	}
	return d, nil
}

// GetDraft retrieves a draft by ID
func (s *DraftService) GetDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	return s.draftRepo.GetByID(ctx, id)
}

// GetByJobID retrieves the current draft for a posting
func (s *DraftService) GetByJobID(ctx context.Context, jobID kernel.JobID) (*draft.Draft, error) {
	return s.draftRepo.GetByJobID(ctx, jobID)
}

// EditDraft replaces a draft's content with a manual revision
func (s *DraftService) EditDraft(ctx context.Context, id kernel.DraftID, content string) (*draft.Draft, error) {
	d, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Edit(content); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Update(ctx, id, d); err != nil {
		return nil, errx.Wrap(err, "failed to update draft", errx.TypeInternal)
	}
	return d, nil
}

// ApproveDraft clears a draft for submission
func (s *DraftService) ApproveDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	d, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Approve(); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Update(ctx, id, d); err != nil {
		return nil, errx.Wrap(err, "failed to update draft", errx.TypeInternal)
	}
	return d, nil
}

// DiscardDraft rejects a draft
func (s *DraftService) DiscardDraft(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	d, err := s.draftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	d.Discard()

	if err := s.draftRepo.Update(ctx, id, d); err != nil {
		return nil, errx.Wrap(err, "failed to update draft", errx.TypeInternal)
	}
	return d, nil
}
