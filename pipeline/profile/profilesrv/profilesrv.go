package profilesrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autocareer/autocareer/internal/ai/embeddings"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/errx"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

// ProfileService provides business operations for applicant profiles
type ProfileService struct {
	profileRepo profile.Repository
	embedder    embeddings.Embedder
}

// NewProfileService creates a new instance of the profile service
func NewProfileService(profileRepo profile.Repository, embedder embeddings.Embedder) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		embedder:    embedder,
	}
}

// CreateProfile creates a new applicant profile
func (s *ProfileService) CreateProfile(ctx context.Context, req profile.CreateProfileRequest) (*profile.Profile, error) {
	now := time.Now()
	p := &profile.Profile{
		ID:         kernel.NewProfileID(uuid.NewString()),
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		LinkedIn:   req.LinkedIn,
		GitHub:     req.GitHub,
		Portfolio:  req.Portfolio,
		Summary:    req.Summary,
		Experience: req.Experience,
		Education:  req.Education,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	p.ReplaceSkills(req.Skills)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Create(ctx, p); err != nil {
		if errx.IsType(err, errx.TypeConflict) {
			return nil, err
		}
		return nil, errx.Wrap(err, "failed to create profile", errx.TypeInternal)
	}

	s.refreshEmbedding(ctx, p)
	return p, nil
}

// GetProfile retrieves a profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, id kernel.ProfileID) (*profile.ProfileResponse, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.ToResponse(p), nil
}

// ListProfiles retrieves profiles with pagination
func (s *ProfileService) ListProfiles(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	profiles, err := s.profileRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list profiles", errx.TypeInternal)
	}
	return profiles, nil
}

// UpdateProfile applies a partial update. A non-nil Skills list replaces
// the stored skills wholesale.
func (s *ProfileService) UpdateProfile(ctx context.Context, id kernel.ProfileID, req profile.UpdateProfileRequest) (*profile.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	narrativeChanged := false
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Email != nil {
		p.Email = kernel.Email(*req.Email)
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.LinkedIn != nil {
		p.LinkedIn = *req.LinkedIn
	}
	if req.GitHub != nil {
		p.GitHub = *req.GitHub
	}
	if req.Portfolio != nil {
		p.Portfolio = *req.Portfolio
	}
	if req.Summary != nil {
		p.Summary = *req.Summary
		narrativeChanged = true
	}
	if req.Experience != nil {
		p.Experience = *req.Experience
		narrativeChanged = true
	}
	if req.Education != nil {
		p.Education = *req.Education
		narrativeChanged = true
	}
	if req.Skills != nil {
		p.ReplaceSkills(*req.Skills)
		narrativeChanged = true
	}
	p.UpdatedAt = time.Now()

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Update(ctx, id, p); err != nil {
		return nil, errx.Wrap(err, "failed to update profile", errx.TypeInternal)
	}

	if narrativeChanged {
		s.refreshEmbedding(ctx, p)
	}
	return p, nil
}

// DeleteProfile deletes a profile by ID
func (s *ProfileService) DeleteProfile(ctx context.Context, id kernel.ProfileID) error {
	return s.profileRepo.Delete(ctx, id)
}

// refreshEmbedding regenerates the narrative embedding. Embedding is an
// optimization for retrieval, so failures only log.
func (s *ProfileService) refreshEmbedding(ctx context.Context, p *profile.Profile) {
	if s.embedder == nil {
		return
	}

	narrative := p.NarrativeText()
	if narrative == "" {
		return
	}

	vec, err := s.embedder.Embed(ctx, narrative)
	if err != nil {
		logx.Warnf("Failed to generate embedding for profile %s: %v", p.ID, err)
		return
	}

	if err := s.profileRepo.UpdateEmbedding(ctx, p.ID, vec); err != nil {
		logx.Warnf("Failed to store embedding for profile %s: %v", p.ID, err)
	}
}
