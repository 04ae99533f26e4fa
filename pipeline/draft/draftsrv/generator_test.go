package draftsrv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autocareer/autocareer/internal/ai"
	"github.com/autocareer/autocareer/internal/ai/llm"
	"github.com/autocareer/autocareer/pipeline/job"
	"github.com/autocareer/autocareer/pipeline/profile"
	"github.com/autocareer/autocareer/pkg/kernel"
)

type stubCompleter struct {
	outcome ai.Outcome[string]
	prompt  string
}

func (s *stubCompleter) Complete(ctx context.Context, req llm.CompletionRequest) ai.Outcome[string] {
	s.prompt = req.Prompt
	return s.outcome
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		ID:       kernel.ProfileID("prof-1"),
		FullName: "Dana Smith",
		Email:    "dana@example.com",
		Skills:   []string{"python", "docker", "kubernetes", "terraform", "aws", "gcp"},
	}
}

func testPosting() *job.Posting {
	return &job.Posting{
		ID:          kernel.JobID("job-1"),
		Title:       "Platform Engineer",
		Company:     "Acme",
		Description: "Run our cloud platform.",
		URL:         kernel.JobURL("#"),
	}
}

func TestGenerate_UsesLLMLetterWhenAvailable(t *testing.T) {
	completer := &stubCompleter{outcome: ai.Ok("Dear Acme team, here is my letter.")}
	g := NewGenerator(completer, nil, nil)

	letter := g.Generate(context.Background(), testProfile(), testPosting(), nil)

	assert.Equal(t, kernel.GenerationMethodLLM, letter.Method)
	assert.Equal(t, "Dear Acme team, here is my letter.", letter.Content)
	assert.Contains(t, completer.prompt, "Platform Engineer at Acme")
	assert.Contains(t, completer.prompt, "Dana Smith")
}

func TestGenerate_FallsBackToTemplateWhenDegraded(t *testing.T) {
	completer := &stubCompleter{outcome: ai.Fallback[string]("no credential")}
	g := NewGenerator(completer, nil, nil)

	letter := g.Generate(context.Background(), testProfile(), testPosting(), []string{"python", "docker"})

	assert.Equal(t, kernel.GenerationMethodTemplate, letter.Method)
	assert.Contains(t, letter.Content, "Dear Acme Hiring Team,")
	assert.Contains(t, letter.Content, "python and docker")
	assert.Contains(t, letter.Content, "Sincerely,\nDana Smith")
}

func TestGenerate_BlankLLMReplyFallsBackToTemplate(t *testing.T) {
	completer := &stubCompleter{outcome: ai.Ok("   \n  ")}
	g := NewGenerator(completer, nil, nil)

	letter := g.Generate(context.Background(), testProfile(), testPosting(), nil)

	assert.Equal(t, kernel.GenerationMethodTemplate, letter.Method)
	assert.NotEmpty(t, letter.Content)
}

func TestTemplateLetter_LandsInUsableWordBand(t *testing.T) {
	tests := []struct {
		name    string
		profile *profile.Profile
		matched []string
	}{
		{
			name:    "full profile with matched skills",
			profile: testProfile(),
			matched: []string{"python", "docker", "kubernetes"},
		},
		{
			name: "sparse profile with no skills at all",
			profile: &profile.Profile{
				FullName: "Lee",
			},
		},
		{
			name: "profile with a summary",
			profile: &profile.Profile{
				FullName: "Dana Smith",
				Summary:  "Infrastructure engineer with eight years of experience running large fleets.",
				Skills:   []string{"terraform"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			letter := templateLetter(tt.profile, testPosting(), tt.matched)
			words := len(strings.Fields(letter))
			assert.GreaterOrEqual(t, words, 200, "letter too short: %d words", words)
			assert.LessOrEqual(t, words, 400, "letter too long: %d words", words)
		})
	}
}

func TestTemplateLetter_CapsSkillListAtFive(t *testing.T) {
	letter := templateLetter(testProfile(), testPosting(), nil)

	// The sixth profile skill never appears
	assert.Contains(t, letter, "aws")
	assert.NotContains(t, letter, "gcp")
}

func TestJoinNatural(t *testing.T) {
	assert.Equal(t, "", joinNatural(nil))
	assert.Equal(t, "go", joinNatural([]string{"go"}))
	assert.Equal(t, "go and rust", joinNatural([]string{"go", "rust"}))
	assert.Equal(t, "go, rust, and zig", joinNatural([]string{"go", "rust", "zig"}))
}
