package job

import (
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// SearchJobsRequest pulls fresh postings from the configured source.
// Salary bounds filter on overlap; postings without salary data pass.
type SearchJobsRequest struct {
	Query     string `json:"query" validate:"required"`
	Location  string `json:"location"`
	SalaryMin *int   `json:"salary_min"`
	SalaryMax *int   `json:"salary_max"`
	Limit     int    `json:"limit"`
}

// ListJobsRequest filters stored postings
type ListJobsRequest struct {
	Status     Status                   `json:"status"`
	OrderByFit bool                     `json:"order_by_fit"`
	Pagination kernel.PaginationOptions `json:"pagination"`
}

// SearchJobsResponse reports an ingestion round
type SearchJobsResponse struct {
	Found     int       `json:"found"`
	Ingested  int       `json:"ingested"`
	Refreshed int       `json:"refreshed"`
	Postings  []Posting `json:"postings"`
}

// PostingWithFit pairs a posting with its latest fit score for ranked
// listings; Score is nil when the posting was never analyzed
type PostingWithFit struct {
	Posting
	Score      *kernel.FitScore `json:"fit_score,omitempty"`
	AssessedAt *time.Time       `json:"assessed_at,omitempty"`
}
