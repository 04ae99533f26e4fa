package jobinfra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pkg/kernel"
)

func boardServer(t *testing.T, jobs []boardJob) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode(boardResponse{Jobs: jobs})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSearch_MapsBoardJobsToPostings(t *testing.T) {
	srv := boardServer(t, []boardJob{
		{
			Title:       "Backend Engineer",
			CompanyName: "Acme",
			Location:    "Worldwide",
			Description: "Build services.",
			URL:         "https://jobs.example.com/1",
			Salary:      "$90,000 - $120,000",
		},
		{
			Title:       "SRE",
			CompanyName: "Globex",
			Description: "Keep it running.",
		},
	})

	source := NewBoardSource(srv.URL)
	postings, err := source.Search(context.Background(), job.SearchJobsRequest{Query: "engineer"})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	first := postings[0]
	assert.Equal(t, "Backend Engineer", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, kernel.JobURL("https://jobs.example.com/1"), first.URL)
	assert.Equal(t, "board", first.Source)
	assert.Equal(t, job.StatusDiscovered, first.Status)
	require.True(t, first.Salary.IsSet())
	assert.Equal(t, 90000, *first.Salary.Min)
	assert.Equal(t, 120000, *first.Salary.Max)

	// A posting without a URL gets the sentinel, never an empty string
	assert.Equal(t, kernel.URLSentinel, postings[1].URL)
}

func TestSearch_FiltersByLocation(t *testing.T) {
	srv := boardServer(t, []boardJob{
		{Title: "A", CompanyName: "Acme", Location: "USA Only"},
		{Title: "B", CompanyName: "Acme", Location: "Europe"},
		{Title: "C", CompanyName: "Acme"}, // no location always passes
	})

	source := NewBoardSource(srv.URL)
	postings, err := source.Search(context.Background(), job.SearchJobsRequest{
		Query:    "engineer",
		Location: "europe",
	})
	require.NoError(t, err)

	require.Len(t, postings, 2)
	assert.Equal(t, "B", postings[0].Title)
	assert.Equal(t, "C", postings[1].Title)
}

func TestSearch_FiltersBySalaryBounds(t *testing.T) {
	srv := boardServer(t, []boardJob{
		{Title: "A", CompanyName: "Acme", Salary: "$40,000 - $60,000"},
		{Title: "B", CompanyName: "Acme", Salary: "$90,000 - $120,000"},
		{Title: "C", CompanyName: "Acme"}, // no salary data always passes
	})

	min := 80000
	source := NewBoardSource(srv.URL)
	postings, err := source.Search(context.Background(), job.SearchJobsRequest{
		Query:     "engineer",
		SalaryMin: &min,
	})
	require.NoError(t, err)

	require.Len(t, postings, 2)
	assert.Equal(t, "B", postings[0].Title)
	assert.Equal(t, "C", postings[1].Title)
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	srv := boardServer(t, []boardJob{
		{Title: "A", CompanyName: "Acme"},
		{Title: "B", CompanyName: "Acme"},
		{Title: "C", CompanyName: "Acme"},
	})

	source := NewBoardSource(srv.URL)
	postings, err := source.Search(context.Background(), job.SearchJobsRequest{
		Query: "engineer",
		Limit: 2,
	})
	require.NoError(t, err)

	require.Len(t, postings, 2)
	assert.Equal(t, "A", postings[0].Title)
	assert.Equal(t, "B", postings[1].Title)
}

func TestSearch_NonOKStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	source := NewBoardSource(srv.URL)
	_, err := source.Search(context.Background(), job.SearchJobsRequest{Query: "engineer"})

	assert.Error(t, err)
}

func TestParseSalary(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name string
		text string
		want kernel.SalaryRange
	}{
		{name: "empty", text: "", want: kernel.SalaryRange{}},
		{name: "no numbers", text: "competitive", want: kernel.SalaryRange{}},
		{
			name: "dollar range with separators",
			text: "$90,000 - $120,000",
			want: kernel.SalaryRange{Min: intp(90000), Max: intp(120000)},
		},
		{
			name: "plain range with currency suffix",
			text: "70000-90000 USD",
			want: kernel.SalaryRange{Min: intp(70000), Max: intp(90000)},
		},
		{
			name: "single figure",
			text: "up to 85000",
			want: kernel.SalaryRange{Min: intp(85000)},
		},
		{
			name: "small numbers are noise, not salaries",
			text: "40 hours per week",
			want: kernel.SalaryRange{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSalary(tt.text)
			if tt.want.Min == nil {
				assert.Nil(t, got.Min)
			} else {
				require.NotNil(t, got.Min)
				assert.Equal(t, *tt.want.Min, *got.Min)
			}
			if tt.want.Max == nil {
				assert.Nil(t, got.Max)
			} else {
				require.NotNil(t, got.Max)
				assert.Equal(t, *tt.want.Max, *got.Max)
			}
		})
	}
}
