package kernel

// FitScore is a 0-100 estimate of profile-to-job match
type FitScore float64

// NeutralScore is assigned when no meaningful analysis was possible
const NeutralScore FitScore = 50.0

// IsValid reports whether the score is inside the accepted range
func (s FitScore) IsValid() bool {
	return s >= 0 && s <= 100
}

// Clamp caps the score at 100 and floors it at 0
func (s FitScore) Clamp() FitScore {
	if s > 100 {
		return 100
	}
	if s < 0 {
		return 0
	}
	return s
}

// ScoreMethod tags which strategy produced a fit assessment
type ScoreMethod string

const (
	ScoreMethodLLM     ScoreMethod = "llm"
	ScoreMethodKeyword ScoreMethod = "keyword"
)

// GenerationMethod tags which path produced a cover letter draft
type GenerationMethod string

const (
	GenerationMethodLLM      GenerationMethod = "llm"
	GenerationMethodTemplate GenerationMethod = "template"
)

type Email string

func (e Email) String() string { return string(e) }

// JobURL is the canonical posting URL; missing URLs carry the "#" sentinel
type JobURL string

// URLSentinel stands in for postings scraped without a usable link
const URLSentinel JobURL = "#"

func (u JobURL) String() string { return string(u) }

// IsNavigable reports whether the URL points at a real page
func (u JobURL) IsNavigable() bool {
	return u != "" && u != URLSentinel
}

// OrDefault returns the sentinel when the URL is empty
func (u JobURL) OrDefault() JobURL {
	if u == "" {
		return URLSentinel
	}
	return u
}

// Embedding is a fixed-length vector produced by the embedding service
type Embedding []float32

func (e Embedding) IsZero() bool { return len(e) == 0 }

// SalaryRange holds optional salary bounds in whole currency units
type SalaryRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

func (r SalaryRange) IsSet() bool {
	return r.Min != nil || r.Max != nil
}
