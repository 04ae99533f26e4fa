package assessment

import (
	"time"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// SubmitThreshold is the minimum fit score at which the pipeline will
// draft and submit an application on its own
const SubmitThreshold kernel.FitScore = 50.0

// FitAssessment records how well a profile matches one posting. A posting
// keeps at most one assessment; re-analysis overwrites it.
type FitAssessment struct {
	ID            kernel.AssessmentID `db:"id" json:"id"`
	JobID         kernel.JobID        `db:"job_id" json:"job_id"`
	ProfileID     kernel.ProfileID    `db:"profile_id" json:"profile_id"`
	Score         kernel.FitScore     `db:"fit_score" json:"fit_score"`
	Method        kernel.ScoreMethod  `db:"method" json:"method"`
	Rationale     string              `db:"rationale" json:"rationale"`
	MatchedSkills []string            `db:"-" json:"matched_skills"`
	Gaps          []string            `db:"-" json:"gaps"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
}

// MeetsThreshold reports whether the score clears the automatic
// application bar
func (a *FitAssessment) MeetsThreshold() bool {
	return a.Score >= SubmitThreshold
}
