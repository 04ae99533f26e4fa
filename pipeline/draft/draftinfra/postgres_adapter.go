package draftinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/autocareer/autocareer/pipeline/draft"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// PostgresDraftRepository implements draft.Repository using PostgreSQL
type PostgresDraftRepository struct {
	db *sqlx.DB
}

// NewPostgresDraftRepository creates a new PostgreSQL draft repository
func NewPostgresDraftRepository(db *sqlx.DB) *PostgresDraftRepository {
	return &PostgresDraftRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type draftModel struct {
	ID        string     `db:"id"`
	JobID     string     `db:"job_id"`
	ProfileID string     `db:"profile_id"`
	Content   string     `db:"content"`
	Method    string     `db:"method"`
	Status    string     `db:"status"`
	EditedAt  *time.Time `db:"edited_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (m *draftModel) toEntity() *draft.Draft {
	return &draft.Draft{
		ID:        kernel.DraftID(m.ID),
		JobID:     kernel.JobID(m.JobID),
		ProfileID: kernel.ProfileID(m.ProfileID),
		Content:   m.Content,
		Method:    kernel.GenerationMethod(m.Method),
		Status:    draft.Status(m.Status),
		EditedAt:  m.EditedAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromEntity(d *draft.Draft) *draftModel {
	return &draftModel{
		ID:        string(d.ID),
		JobID:     string(d.JobID),
		ProfileID: string(d.ProfileID),
		Content:   d.Content,
		Method:    string(d.Method),
		Status:    string(d.Status),
		EditedAt:  d.EditedAt,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// ReplaceForJob stores a draft, replacing any previous draft for the same
// posting. One draft per posting, latest wins.
func (r *PostgresDraftRepository) ReplaceForJob(ctx context.Context, d *draft.Draft) error {
	model := fromEntity(d)

	query := `
		INSERT INTO drafts (
			id, job_id, profile_id, content, method, status,
			edited_at, created_at, updated_at
		) VALUES (
			:id, :job_id, :profile_id, :content, :method, :status,
			:edited_at, :created_at, :updated_at
		)
		ON CONFLICT (job_id) DO UPDATE SET
			id = EXCLUDED.id,
			profile_id = EXCLUDED.profile_id,
			content = EXCLUDED.content,
			method = EXCLUDED.method,
			status = EXCLUDED.status,
			edited_at = EXCLUDED.edited_at,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to replace draft: %w", err)
	}

	return nil
}

// Update persists edits to an existing draft
func (r *PostgresDraftRepository) Update(ctx context.Context, id kernel.DraftID, d *draft.Draft) error {
	model := fromEntity(d)

	query := `
		UPDATE drafts SET
			content = :content,
			method = :method,
			status = :status,
			edited_at = :edited_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return draft.ErrDraftNotFound()
	}

	return nil
}

// GetByID retrieves a draft by ID
func (r *PostgresDraftRepository) GetByID(ctx context.Context, id kernel.DraftID) (*draft.Draft, error) {
	query := `
		SELECT
			id, job_id, profile_id, content, method, status,
			edited_at, created_at, updated_at
		FROM drafts
		WHERE id = $1
	`

	var model draftModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, draft.ErrDraftNotFound()
		}
		return nil, fmt.Errorf("failed to get draft by id: %w", err)
	}

	return model.toEntity(), nil
}

// GetByJobID retrieves the current draft for a posting
func (r *PostgresDraftRepository) GetByJobID(ctx context.Context, jobID kernel.JobID) (*draft.Draft, error) {
	query := `
		SELECT
			id, job_id, profile_id, content, method, status,
			edited_at, created_at, updated_at
		FROM drafts
		WHERE job_id = $1
	`

	var model draftModel
	err := r.db.GetContext(ctx, &model, query, string(jobID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, draft.ErrDraftNotFound().WithDetail("job_id", jobID.String())
		}
		return nil, fmt.Errorf("failed to get draft by job id: %w", err)
	}

	return model.toEntity(), nil
}
