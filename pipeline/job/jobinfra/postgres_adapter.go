package jobinfra

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type postingModel struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Company     string    `db:"company"`
	Location    string    `db:"location"`
	Description string    `db:"description"`
	URL         string    `db:"url"`
	SalaryMin   *int      `db:"salary_min"`
	SalaryMax   *int      `db:"salary_max"`
	Source      string    `db:"source"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type postingWithFitModel struct {
	postingModel
	FitScore   *float64   `db:"fit_score"`
	AssessedAt *time.Time `db:"assessed_at"`
}

func (m *postingModel) toEntity() *job.Posting {
	return &job.Posting{
		ID:          kernel.JobID(m.ID),
		Title:       m.Title,
		Company:     m.Company,
		Location:    m.Location,
		Description: m.Description,
		URL:         kernel.JobURL(m.URL),
		Salary:      kernel.SalaryRange{Min: m.SalaryMin, Max: m.SalaryMax},
		Source:      m.Source,
		Status:      job.Status(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromEntity(p *job.Posting) *postingModel {
	return &postingModel{
		ID:          string(p.ID),
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
		URL:         string(p.URL),
		SalaryMin:   p.Salary.Min,
		SalaryMax:   p.Salary.Max,
		Source:      p.Source,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// UpsertByURL inserts a posting or refreshes the row already holding its
// URL. Sentinel URLs carry no identity, so those postings always insert.
func (r *PostgresJobRepository) UpsertByURL(ctx context.Context, p *job.Posting) (*job.Posting, bool, error) {
	p.Normalize()

	if p.URL.IsNavigable() {
		existing, err := r.getByURL(ctx, p.URL)
		if err != nil && err != sql.ErrNoRows {
			return nil, false, fmt.Errorf("failed to check posting url: %w", err)
		}
		if err == nil {
			// Refresh content, keep identity and pipeline progress
			existing.Title = p.Title
			existing.Company = p.Company
			existing.Location = p.Location
			existing.Description = p.Description
			existing.Salary = p.Salary
			existing.Source = p.Source
			existing.UpdatedAt = time.Now()
			if err := r.update(ctx, existing); err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
	}

	model := fromEntity(p)
	query := `
		INSERT INTO job_postings (
			id, title, company, location, description, url,
			salary_min, salary_max, source, status, created_at, updated_at
		) VALUES (
			:id, :title, :company, :location, :description, :url,
			:salary_min, :salary_max, :source, :status, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return nil, false, job.ErrJobAlreadyExists().WithDetail("url", string(p.URL))
			}
		}
		return nil, false, fmt.Errorf("failed to create posting: %w", err)
	}

	return p, true, nil
}

// GetByID retrieves a posting by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Posting, error) {
	query := `
		SELECT
			id, title, company, location, description, url,
			salary_min, salary_max, source, status, created_at, updated_at
		FROM job_postings
		WHERE id = $1
	`

	var model postingModel
	err := r.db.GetContext(ctx, &model, query, string(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get posting by id: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves postings, optionally filtered by status and ordered by
// their latest fit score instead of recency
func (r *PostgresJobRepository) List(ctx context.Context, req job.ListJobsRequest) (*kernel.Paginated[job.PostingWithFit], error) {
	pagination := req.Pagination.Normalize()

	whereClause := ""
	args := []interface{}{}
	argCount := 1
	if req.Status != "" {
		whereClause = fmt.Sprintf("WHERE j.status = $%d", argCount)
		args = append(args, string(req.Status))
		argCount++
	}

	// Unscored postings sort last under fit ordering
	orderClause := "ORDER BY j.created_at DESC"
	if req.OrderByFit {
		orderClause = "ORDER BY a.fit_score DESC NULLS LAST, j.created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT
			j.id, j.title, j.company, j.location, j.description, j.url,
			j.salary_min, j.salary_max, j.source, j.status,
			j.created_at, j.updated_at,
			a.fit_score AS fit_score, a.created_at AS assessed_at
		FROM job_postings j
		LEFT JOIN fit_assessments a ON a.job_id = j.id
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause, argCount, argCount+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	var models []postingWithFitModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}

	items := make([]job.PostingWithFit, 0, len(models))
	for _, model := range models {
		item := job.PostingWithFit{
			Posting:    *model.postingModel.toEntity(),
			AssessedAt: model.AssessedAt,
		}
		if model.FitScore != nil {
			score := kernel.FitScore(*model.FitScore)
			item.Score = &score
		}
		items = append(items, item)
	}

	return kernel.NewPaginated(items, pagination.Page), nil
}

// UpdateStatus advances a posting's status
func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id kernel.JobID, status job.Status) error {
	query := `
		UPDATE job_postings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now(), string(id))
	if err != nil {
		return fmt.Errorf("failed to update posting status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// Delete deletes a posting by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	query := `DELETE FROM job_postings WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete posting: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// ============================================================================
// Private Helper Methods
// ============================================================================

func (r *PostgresJobRepository) getByURL(ctx context.Context, url kernel.JobURL) (*job.Posting, error) {
	query := `
		SELECT
			id, title, company, location, description, url,
			salary_min, salary_max, source, status, created_at, updated_at
		FROM job_postings
		WHERE url = $1
	`

	var model postingModel
	if err := r.db.GetContext(ctx, &model, query, string(url)); err != nil {
		return nil, err
	}
	return model.toEntity(), nil
}

func (r *PostgresJobRepository) update(ctx context.Context, p *job.Posting) error {
	model := fromEntity(p)
	query := `
		UPDATE job_postings SET
			title = :title,
			company = :company,
			location = :location,
			description = :description,
			salary_min = :salary_min,
			salary_max = :salary_max,
			source = :source,
			updated_at = :updated_at
		WHERE id = :id
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to refresh posting: %w", err)
	}
	return nil
}
