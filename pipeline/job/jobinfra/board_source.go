package jobinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pkg/kernel"
)

// BoardSource pulls postings from a Remotive-compatible JSON board API
type BoardSource struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBoardSource creates a job source against baseURL (e.g.
// https://remotive.com/api/remote-jobs). Requests are rate limited to
// stay inside public API budgets.
func NewBoardSource(baseURL string) *BoardSource {
	return &BoardSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"candidate_required_location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Salary      string `json:"salary"`
}

// Search queries the board and maps its results to postings
func (s *BoardSource) Search(ctx context.Context, req job.SearchJobsRequest) ([]job.Posting, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, job.ErrSourceFailed().WithCause(err)
	}

	endpoint := fmt.Sprintf("%s?search=%s", s.baseURL, url.QueryEscape(req.Query))
	if req.Limit > 0 {
		endpoint += "&limit=" + strconv.Itoa(req.Limit)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, job.ErrSourceFailed().WithCause(err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, job.ErrSourceFailed().WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, job.ErrSourceFailed().WithDetail("status", resp.StatusCode)
	}

	var body boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, job.ErrSourceFailed().WithCause(err)
	}

	postings := make([]job.Posting, 0, len(body.Jobs))
	for _, bj := range body.Jobs {
		location := bj.Location
		if req.Location != "" && location != "" &&
			!strings.Contains(strings.ToLower(location), strings.ToLower(req.Location)) {
			continue
		}

		salary := parseSalary(bj.Salary)
		if !matchesSalary(salary, req.SalaryMin, req.SalaryMax) {
			continue
		}

		p := job.Posting{
			Title:       bj.Title,
			Company:     bj.CompanyName,
			Location:    location,
			Description: bj.Description,
			URL:         kernel.JobURL(bj.URL),
			Salary:      salary,
			Source:      "board",
		}
		p.Normalize()
		postings = append(postings, p)

		if req.Limit > 0 && len(postings) >= req.Limit {
			break
		}
	}
	return postings, nil
}

// matchesSalary reports whether the posting's range overlaps the requested
// bounds. Postings without salary data always pass.
func matchesSalary(r kernel.SalaryRange, min, max *int) bool {
	if !r.IsSet() {
		return true
	}
	if min != nil && r.Max != nil && *r.Max < *min {
		return false
	}
	if max != nil && r.Min != nil && *r.Min > *max {
		return false
	}
	return true
}

// parseSalary extracts numeric bounds from free-text salary strings like
// "$90,000 - $120,000" or "70000-90000 USD". Unparseable text leaves the
// range unset.
func parseSalary(text string) kernel.SalaryRange {
	var r kernel.SalaryRange
	if text == "" {
		return r
	}

	var numbers []int
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		if n, err := strconv.Atoi(current.String()); err == nil && n >= 1000 {
			numbers = append(numbers, n)
		}
		current.Reset()
	}

	for _, ch := range text {
		switch {
		case ch >= '0' && ch <= '9':
			current.WriteRune(ch)
		case ch == ',':
			// Thousands separator inside a number
		default:
			flush()
		}
	}
	flush()

	if len(numbers) >= 1 {
		r.Min = &numbers[0]
	}
	if len(numbers) >= 2 {
		r.Max = &numbers[1]
	}
	return r
}
