package assessmentsrv

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/autocareer/autocareer/pkg/kernel"
)

// ScoreInput carries everything a scoring strategy may look at
type ScoreInput struct {
	Skills      []string
	Experience  string
	JobTitle    string
	Company     string
	Description string
}

// ScoreResult is the outcome of one scoring strategy
type ScoreResult struct {
	Score         kernel.FitScore
	Method        kernel.ScoreMethod
	Rationale     string
	MatchedSkills []string
	Gaps          []string
}

// KeywordScorer estimates fit from vocabulary overlap between the job
// description and the profile's skills. It is deterministic and never
// fails, which makes it the universal fallback.
type KeywordScorer struct{}

// NewKeywordScorer creates a keyword overlap scorer
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

// Score computes overlap as matched keywords over job keywords, scaled
// to 0-100. A description yielding no keywords scores neutral because
// there is nothing to compare against.
func (s *KeywordScorer) Score(input ScoreInput) ScoreResult {
	jobKeywords := ExtractKeywords(input.Description)
	if len(jobKeywords) == 0 {
		return ScoreResult{
			Score:     kernel.NeutralScore,
			Method:    kernel.ScoreMethodKeyword,
			Rationale: "No recognizable skill keywords in the job description; assigned neutral score.",
		}
	}

	skillSet := make(map[string]bool, len(input.Skills))
	for _, skill := range input.Skills {
		skillSet[strings.ToLower(strings.TrimSpace(skill))] = true
	}

	matched := make([]string, 0, len(jobKeywords))
	gaps := make([]string, 0, len(jobKeywords))
	for _, kw := range jobKeywords {
		if skillSet[kw] {
			matched = append(matched, kw)
		} else {
			gaps = append(gaps, kw)
		}
	}

	score := kernel.FitScore(float64(len(matched)) / float64(len(jobKeywords)) * 100).Clamp()

	return ScoreResult{
		Score:         score,
		Method:        kernel.ScoreMethodKeyword,
		Rationale:     fmt.Sprintf("Matched %d of %d skill keywords from the job description.", len(matched), len(jobKeywords)),
		MatchedSkills: matched,
		Gaps:          gaps,
	}
}

// ExtractKeywords returns vocabulary terms present in text, in vocabulary
// order, deduplicated
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var found []string
	for _, term := range techVocabulary {
		if containsTerm(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// containsTerm matches single-word terms on word boundaries so "java"
// does not fire on "javascript"; multi-word and symbol-bearing terms
// match as plain substrings
func containsTerm(text, term string) bool {
	if strings.ContainsAny(term, " +#/.-") {
		return strings.Contains(text, term)
	}

	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)

		beforeOK := start == 0 || !isWordChar(rune(text[start-1]))
		afterOK := end == len(text) || !isWordChar(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
