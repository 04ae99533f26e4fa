package audit

import (
	"context"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// ListFilter narrows a log listing. Zero values mean no filtering.
type ListFilter struct {
	JobID      kernel.JobID
	RunID      kernel.RunID
	Action     Action
	Status     EntryStatus
	Pagination kernel.PaginationOptions
}

// Store is the append-only audit log. There is deliberately no update or
// delete: the log is evidence.
type Store interface {
	// Append links the entry into the hash chain and persists it
	Append(ctx context.Context, entry *LogEntry) error

	// List retrieves entries newest-first with optional filters
	List(ctx context.Context, filter ListFilter) (*kernel.Paginated[LogEntry], error)

	// ListChain retrieves all entries oldest-first for chain verification
	ListChain(ctx context.Context) ([]LogEntry, error)
}
