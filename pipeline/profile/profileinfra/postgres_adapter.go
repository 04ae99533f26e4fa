package profileinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// PostgresProfileRepository implements profile.Repository using PostgreSQL
type PostgresProfileRepository struct {
	db *sqlx.DB
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type profileModel struct {
	ID         string          `db:"id"`
	FullName   string          `db:"full_name"`
	Email      string          `db:"email"`
	Phone      string          `db:"phone"`
	LinkedIn   string          `db:"linkedin_url"`
	GitHub     string          `db:"github_url"`
	Portfolio  string          `db:"portfolio_url"`
	Summary    string          `db:"summary"`
	Skills     json.RawMessage `db:"skills"`
	Experience string          `db:"experience"`
	Education  string          `db:"education"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (m *profileModel) toEntity() (*profile.Profile, error) {
	var skills []string
	if len(m.Skills) > 0 {
		if err := json.Unmarshal(m.Skills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}

	return &profile.Profile{
		ID:         kernel.ProfileID(m.ID),
		FullName:   m.FullName,
		Email:      kernel.Email(m.Email),
		Phone:      m.Phone,
		LinkedIn:   m.LinkedIn,
		GitHub:     m.GitHub,
		Portfolio:  m.Portfolio,
		Summary:    m.Summary,
		Skills:     skills,
		Experience: m.Experience,
		Education:  m.Education,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

func fromEntity(p *profile.Profile) (*profileModel, error) {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	return &profileModel{
		ID:         string(p.ID),
		FullName:   p.FullName,
		Email:      string(p.Email),
		Phone:      p.Phone,
		LinkedIn:   p.LinkedIn,
		GitHub:     p.GitHub,
		Portfolio:  p.Portfolio,
		Summary:    p.Summary,
		Skills:     skills,
		Experience: p.Experience,
		Education:  p.Education,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new profile
func (r *PostgresProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	model, err := fromEntity(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, full_name, email, phone, linkedin_url, github_url,
			portfolio_url, summary, skills, experience, education,
			created_at, updated_at
		) VALUES (
			:id, :full_name, :email, :phone, :linkedin_url, :github_url,
			:portfolio_url, :summary, :skills, :experience, :education,
			:created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return profile.ErrProfileAlreadyExists()
			}
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// Update updates an existing profile
func (r *PostgresProfileRepository) Update(ctx context.Context, id kernel.ProfileID, p *profile.Profile) error {
	model, err := fromEntity(p)
	if err != nil {
		return err
	}

	query := `
		UPDATE profiles SET
			full_name = :full_name,
			email = :email,
			phone = :phone,
			linkedin_url = :linkedin_url,
			github_url = :github_url,
			portfolio_url = :portfolio_url,
			summary = :summary,
			skills = :skills,
			experience = :experience,
			education = :education,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return profile.ErrProfileNotFound()
	}

	return nil
}

// GetByID retrieves a profile by ID
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id kernel.ProfileID) (*profile.Profile, error) {
	query := `
		SELECT
			id, full_name, email, phone, linkedin_url, github_url,
			portfolio_url, summary, skills, experience, education,
			created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var model profileModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, profile.ErrProfileNotFound()
		}
		return nil, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return model.toEntity()
}

// List retrieves all profiles with pagination
func (r *PostgresProfileRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[profile.Profile], error) {
	pagination = pagination.Normalize()

	query := `
		SELECT
			id, full_name, email, phone, linkedin_url, github_url,
			portfolio_url, summary, skills, experience, education,
			created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var models []profileModel
	err := r.db.SelectContext(ctx, &models, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	entities := make([]profile.Profile, 0, len(models))
	for _, model := range models {
		entity, err := model.toEntity()
		if err != nil {
			return nil, err
		}
		entities = append(entities, *entity)
	}

	return kernel.NewPaginated(entities, pagination.Page), nil
}

// UpdateEmbedding stores the narrative embedding for a profile
func (r *PostgresProfileRepository) UpdateEmbedding(ctx context.Context, id kernel.ProfileID, embedding kernel.Embedding) error {
	query := `
		UPDATE profiles
		SET embedding = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, vectorOrNil(embedding), time.Now(), string(id))
	if err != nil {
		return fmt.Errorf("failed to update profile embedding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return profile.ErrProfileNotFound()
	}

	return nil
}

// Delete deletes a profile by ID
func (r *PostgresProfileRepository) Delete(ctx context.Context, id kernel.ProfileID) error {
	query := `DELETE FROM profiles WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return profile.ErrProfileNotFound()
	}

	return nil
}

// Helper function
func vectorOrNil(embedding kernel.Embedding) interface{} {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}
