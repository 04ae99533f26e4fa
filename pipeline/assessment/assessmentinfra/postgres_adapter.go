package assessmentinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/autocareer/autocareer/pipeline/assessment"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// PostgresAssessmentRepository implements assessment.Repository using
// PostgreSQL
type PostgresAssessmentRepository struct {
	db *sqlx.DB
}

// NewPostgresAssessmentRepository creates a new PostgreSQL assessment
// repository
func NewPostgresAssessmentRepository(db *sqlx.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type assessmentModel struct {
	ID            string          `db:"id"`
	JobID         string          `db:"job_id"`
	ProfileID     string          `db:"profile_id"`
	FitScore      float64         `db:"fit_score"`
	Method        string          `db:"method"`
	Rationale     string          `db:"rationale"`
	MatchedSkills json.RawMessage `db:"matched_skills"`
	Gaps          json.RawMessage `db:"gaps"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (m *assessmentModel) toEntity() (*assessment.FitAssessment, error) {
	var matched, gaps []string
	if len(m.MatchedSkills) > 0 {
		if err := json.Unmarshal(m.MatchedSkills, &matched); err != nil {
			return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
		}
	}
	if len(m.Gaps) > 0 {
		if err := json.Unmarshal(m.Gaps, &gaps); err != nil {
			return nil, fmt.Errorf("failed to unmarshal gaps: %w", err)
		}
	}

	return &assessment.FitAssessment{
		ID:            kernel.AssessmentID(m.ID),
		JobID:         kernel.JobID(m.JobID),
		ProfileID:     kernel.ProfileID(m.ProfileID),
		Score:         kernel.FitScore(m.FitScore),
		Method:        kernel.ScoreMethod(m.Method),
		Rationale:     m.Rationale,
		MatchedSkills: matched,
		Gaps:          gaps,
		CreatedAt:     m.CreatedAt,
	}, nil
}

func fromEntity(a *assessment.FitAssessment) (*assessmentModel, error) {
	matched, err := json.Marshal(a.MatchedSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal matched skills: %w", err)
	}
	gaps, err := json.Marshal(a.Gaps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}

	return &assessmentModel{
		ID:            string(a.ID),
		JobID:         string(a.JobID),
		ProfileID:     string(a.ProfileID),
		FitScore:      float64(a.Score),
		Method:        string(a.Method),
		Rationale:     a.Rationale,
		MatchedSkills: matched,
		Gaps:          gaps,
		CreatedAt:     a.CreatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// UpsertForJob stores an assessment, replacing any previous one for the
// same posting
func (r *PostgresAssessmentRepository) UpsertForJob(ctx context.Context, a *assessment.FitAssessment) error {
	model, err := fromEntity(a)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO fit_assessments (
			id, job_id, profile_id, fit_score, method, rationale,
			matched_skills, gaps, created_at
		) VALUES (
			:id, :job_id, :profile_id, :fit_score, :method, :rationale,
			:matched_skills, :gaps, :created_at
		)
		ON CONFLICT (job_id) DO UPDATE SET
			id = EXCLUDED.id,
			profile_id = EXCLUDED.profile_id,
			fit_score = EXCLUDED.fit_score,
			method = EXCLUDED.method,
			rationale = EXCLUDED.rationale,
			matched_skills = EXCLUDED.matched_skills,
			gaps = EXCLUDED.gaps,
			created_at = EXCLUDED.created_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to upsert assessment: %w", err)
	}

	return nil
}

// GetByJobID retrieves the current assessment for a posting
func (r *PostgresAssessmentRepository) GetByJobID(ctx context.Context, jobID kernel.JobID) (*assessment.FitAssessment, error) {
	query := `
		SELECT
			id, job_id, profile_id, fit_score, method, rationale,
			matched_skills, gaps, created_at
		FROM fit_assessments
		WHERE job_id = $1
	`

	var model assessmentModel
	err := r.db.GetContext(ctx, &model, query, string(jobID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, assessment.ErrAssessmentNotFound().WithDetail("job_id", jobID.String())
		}
		return nil, fmt.Errorf("failed to get assessment by job id: %w", err)
	}

	return model.toEntity()
}

// DeleteByJobID removes a posting's assessment
func (r *PostgresAssessmentRepository) DeleteByJobID(ctx context.Context, jobID kernel.JobID) error {
	query := `DELETE FROM fit_assessments WHERE job_id = $1`

	result, err := r.db.ExecContext(ctx, query, string(jobID))
	if err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return assessment.ErrAssessmentNotFound().WithDetail("job_id", jobID.String())
	}

	return nil
}
