package assessmentsrv

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/autocareer/autocareer/internal/ai"
	"github.com/autocareer/autocareer/internal/ai/llm"
	"github.com/autocareer/autocareer/pkg/kernel"
)

const scoringSystemPrompt = "You are a recruiting analyst. Respond in exactly two lines:\n" +
	"SCORE: <number between 0 and 100>\n" +
	"RATIONALE: <one or two sentences>"

var (
	scorePattern     = regexp.MustCompile(`SCORE:\s*(\d+(\.\d+)?)`)
	rationalePattern = regexp.MustCompile(`RATIONALE:\s*(.+)`)
)

// LLMScorer asks the reasoning service for a fit estimate. Any transport
// failure or malformed reply resolves to Fallback so the caller can run
// the keyword strategy instead.
type LLMScorer struct {
	completer llm.Completer
}

// NewLLMScorer creates an LLM-backed scorer
func NewLLMScorer(completer llm.Completer) *LLMScorer {
	return &LLMScorer{completer: completer}
}

// Score produces a fit score and rationale from the reasoning service.
// An empty job description gives the model nothing to reason about, so it
// degrades straight to the keyword strategy's neutral result.
func (s *LLMScorer) Score(ctx context.Context, input ScoreInput) ai.Outcome[ScoreResult] {
	if strings.TrimSpace(input.Description) == "" {
		return ai.Fallback[ScoreResult]("empty job description")
	}

	outcome := s.completer.Complete(ctx, llm.CompletionRequest{
		System:      scoringSystemPrompt,
		Prompt:      buildScoringPrompt(input),
		Temperature: 0.2,
		MaxTokens:   500,
	})

	switch outcome.Status {
	case ai.OutcomeFatal:
		return ai.Fatal[ScoreResult](outcome.Err)
	case ai.OutcomeFallback:
		return ai.Fallback[ScoreResult](outcome.Reason)
	}

	result, err := parseScoringReply(outcome.Value)
	if err != nil {
		return ai.Fallback[ScoreResult]("unparseable scoring reply: " + err.Error())
	}
	return ai.Ok(result)
}

// parseScoringReply extracts SCORE and RATIONALE lines. A reply missing
// either, or carrying a score outside [0,100], is rejected outright rather
// than guessed at or clamped.
func parseScoringReply(reply string) (ScoreResult, error) {
	scoreMatch := scorePattern.FindStringSubmatch(reply)
	if scoreMatch == nil {
		return ScoreResult{}, fmt.Errorf("missing SCORE line")
	}

	raw, err := strconv.ParseFloat(scoreMatch[1], 64)
	if err != nil {
		return ScoreResult{}, fmt.Errorf("non-numeric score %q", scoreMatch[1])
	}

	score := kernel.FitScore(raw)
	if !score.IsValid() {
		return ScoreResult{}, fmt.Errorf("score %v outside [0,100]", raw)
	}

	rationaleMatch := rationalePattern.FindStringSubmatch(reply)
	if rationaleMatch == nil {
		return ScoreResult{}, fmt.Errorf("missing RATIONALE line")
	}

	return ScoreResult{
		Score:     score,
		Method:    kernel.ScoreMethodLLM,
		Rationale: strings.TrimSpace(rationaleMatch[1]),
	}, nil
}

func buildScoringPrompt(input ScoreInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate skills: %s\n", strings.Join(input.Skills, ", "))
	if input.Experience != "" {
		fmt.Fprintf(&b, "Candidate experience:\n%s\n", input.Experience)
	}
	fmt.Fprintf(&b, "\nJob: %s at %s\n", input.JobTitle, input.Company)
	fmt.Fprintf(&b, "Job description:\n%s\n", input.Description)
	b.WriteString("\nHow well does this candidate fit the job?")
	return b.String()
}
