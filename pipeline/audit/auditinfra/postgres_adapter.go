package auditinfra

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/autocareer/autocareer/pipeline/audit"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// PostgresAuditStore implements audit.Store using PostgreSQL. A store-wide
// mutex serializes appends so the hash chain never forks under concurrent
// pipeline runs.
type PostgresAuditStore struct {
	db *sqlx.DB
	mu sync.Mutex
}

// NewPostgresAuditStore creates a new PostgreSQL audit store
func NewPostgresAuditStore(db *sqlx.DB) *PostgresAuditStore {
	return &PostgresAuditStore{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type entryModel struct {
	ID        string    `db:"id"`
	RunID     string    `db:"run_id"`
	JobID     string    `db:"job_id"`
	Action    string    `db:"action"`
	Status    string    `db:"status"`
	Detail    string    `db:"detail"`
	PrevHash  string    `db:"prev_hash"`
	Hash      string    `db:"hash"`
	CreatedAt time.Time `db:"created_at"`
}

func (m *entryModel) toEntity() audit.LogEntry {
	return audit.LogEntry{
		ID:        kernel.LogEntryID(m.ID),
		RunID:     kernel.RunID(m.RunID),
		JobID:     kernel.JobID(m.JobID),
		Action:    audit.Action(m.Action),
		Status:    audit.EntryStatus(m.Status),
		Detail:    m.Detail,
		PrevHash:  m.PrevHash,
		Hash:      m.Hash,
		CreatedAt: m.CreatedAt,
	}
}

// ============================================================================
// Store Implementation
// ============================================================================

// Append links the entry to the chain tip and inserts it. The entry's ID,
// hashes, and timestamp are assigned here.
func (s *PostgresAuditStore) Append(ctx context.Context, entry *audit.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevHash, err := s.chainTip(ctx)
	if err != nil {
		return audit.ErrAppendFailed().WithCause(err)
	}

	if entry.ID.IsEmpty() {
		entry.ID = kernel.NewLogEntryID(uuid.NewString())
	}
	entry.CreatedAt = time.Now()
	entry.PrevHash = prevHash
	entry.Hash = entry.ComputeHash()

	query := `
		INSERT INTO application_logs (
			id, run_id, job_id, action, status, detail,
			prev_hash, hash, created_at
		) VALUES (
			:id, :run_id, :job_id, :action, :status, :detail,
			:prev_hash, :hash, :created_at
		)
	`

	model := entryModel{
		ID:        string(entry.ID),
		RunID:     string(entry.RunID),
		JobID:     string(entry.JobID),
		Action:    string(entry.Action),
		Status:    string(entry.Status),
		Detail:    entry.Detail,
		PrevHash:  entry.PrevHash,
		Hash:      entry.Hash,
		CreatedAt: entry.CreatedAt,
	}

	if _, err := s.db.NamedExecContext(ctx, query, &model); err != nil {
		return audit.ErrAppendFailed().WithCause(err)
	}

	return nil
}

// List retrieves entries newest-first with optional filters
func (s *PostgresAuditStore) List(ctx context.Context, filter audit.ListFilter) (*kernel.Paginated[audit.LogEntry], error) {
	pagination := filter.Pagination.Normalize()

	whereConditions := []string{}
	args := []interface{}{}
	argCount := 1

	if !filter.JobID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("job_id = $%d", argCount))
		args = append(args, string(filter.JobID))
		argCount++
	}
	if !filter.RunID.IsEmpty() {
		whereConditions = append(whereConditions, fmt.Sprintf("run_id = $%d", argCount))
		args = append(args, string(filter.RunID))
		argCount++
	}
	if filter.Action != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("action = $%d", argCount))
		args = append(args, string(filter.Action))
		argCount++
	}
	if filter.Status != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, string(filter.Status))
		argCount++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + whereConditions[0]
		for i := 1; i < len(whereConditions); i++ {
			whereClause += " AND " + whereConditions[i]
		}
	}

	query := fmt.Sprintf(`
		SELECT
			id, run_id, job_id, action, status, detail,
			prev_hash, hash, created_at
		FROM application_logs
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argCount, argCount+1)

	args = append(args, pagination.Limit(), pagination.Offset())

	var models []entryModel
	if err := s.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]audit.LogEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, model.toEntity())
	}

	return kernel.NewPaginated(entries, pagination.Page), nil
}

// ListChain retrieves every entry oldest-first so the full hash chain can
// be verified
func (s *PostgresAuditStore) ListChain(ctx context.Context) ([]audit.LogEntry, error) {
	query := `
		SELECT
			id, run_id, job_id, action, status, detail,
			prev_hash, hash, created_at
		FROM application_logs
		ORDER BY created_at ASC
	`

	var models []entryModel
	if err := s.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to read audit chain: %w", err)
	}

	entries := make([]audit.LogEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, model.toEntity())
	}
	return entries, nil
}

// chainTip returns the hash of the most recent entry, or "" for an empty
// log
func (s *PostgresAuditStore) chainTip(ctx context.Context) (string, error) {
	query := `SELECT hash FROM application_logs ORDER BY created_at DESC LIMIT 1`

	var hash string
	err := s.db.GetContext(ctx, &hash, query)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}
