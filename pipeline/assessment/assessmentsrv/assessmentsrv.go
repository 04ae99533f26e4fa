package assessmentsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/autocareer/autocareer/internal/ai"
	"github.com/autocareer/autocareer/pipeline/assessment"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/errx"
	"github.com/autocareer/autocareer/pkg/kernel"
	"github.com/autocareer/autocareer/pkg/logx"
)

// AssessmentService scores profile-to-job fit and persists the result.
// The LLM strategy runs first; the keyword strategy covers every failure
// so scoring itself never fails.
type AssessmentService struct {
	assessmentRepo assessment.Repository
	llmScorer      *LLMScorer
	keywordScorer  *KeywordScorer
}

// NewAssessmentService creates a new instance of the assessment service
func NewAssessmentService(assessmentRepo assessment.Repository, llmScorer *LLMScorer) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		llmScorer:      llmScorer,
		keywordScorer:  NewKeywordScorer(),
	}
}

// Assess scores how well a profile fits a posting and stores the
// assessment, replacing any previous one for the posting
func (s *AssessmentService) Assess(ctx context.Context, p *profile.Profile, posting *job.Posting) (*assessment.FitAssessment, error) {
	input := ScoreInput{
		Skills:      p.Skills,
		Experience:  p.Experience,
		JobTitle:    posting.Title,
		Company:     posting.Company,
		Description: posting.Description,
	}

	result := s.score(ctx, input)

	// Matched skills and gaps come from deterministic keyword analysis
	// regardless of which strategy produced the score
	keywordResult := s.keywordScorer.Score(input)
	result.MatchedSkills = keywordResult.MatchedSkills
	result.Gaps = keywordResult.Gaps

	a := &assessment.FitAssessment{
		ID:            kernel.NewAssessmentID(uuid.NewString()),
		JobID:         posting.ID,
		ProfileID:     p.ID,
		Score:         result.Score,
		Method:        result.Method,
		Rationale:     result.Rationale,
		MatchedSkills: result.MatchedSkills,
		Gaps:          result.Gaps,
		CreatedAt:     time.Now(),
	}

	if err := s.assessmentRepo.UpsertForJob(ctx, a); err != nil {
		return nil, errx.Wrap(err, "failed to store assessment", errx.TypeInternal)
	}

	return a, nil
}

// GetByJobID retrieves the current assessment for a posting
func (s *AssessmentService) GetByJobID(ctx context.Context, jobID kernel.JobID) (*assessment.FitAssessment, error) {
	return s.assessmentRepo.GetByJobID(ctx, jobID)
}

// score runs the LLM strategy with keyword fallback
func (s *AssessmentService) score(ctx context.Context, input ScoreInput) ScoreResult {
	if s.llmScorer != nil {
		outcome := s.llmScorer.Score(ctx, input)
		if outcome.IsOK() {
			return outcome.Value
		}
		if outcome.Status == ai.OutcomeFatal {
			logx.Warnf("LLM scoring aborted: %v", outcome.Err)
		} else {
			logx.Infof("LLM scoring degraded to keyword strategy: %s", outcome.Reason)
		}
	}
	return s.keywordScorer.Score(input)
}
