package assessmentsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/autocareer/autocareer/pkg/kernel"
)

func TestKeywordScorer_NeutralOnEmptyDescription(t *testing.T) {
	scorer := NewKeywordScorer()

	result := scorer.Score(ScoreInput{
		Skills:      []string{"python", "go"},
		Description: "",
	})

	assert.Equal(t, kernel.NeutralScore, result.Score)
	assert.Equal(t, kernel.ScoreMethodKeyword, result.Method)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.Gaps)
}

func TestKeywordScorer_NeutralWhenNoVocabularyHits(t *testing.T) {
	scorer := NewKeywordScorer()

	result := scorer.Score(ScoreInput{
		Skills:      []string{"python"},
		Description: "We need someone friendly to water the office plants.",
	})

	assert.Equal(t, kernel.NeutralScore, result.Score)
	assert.Equal(t, kernel.ScoreMethodKeyword, result.Method)
}

func TestKeywordScorer_OverlapRatio(t *testing.T) {
	scorer := NewKeywordScorer()

	// Description mentions python and tensorflow; the candidate has
	// python and pytorch. One of two keywords matched.
	result := scorer.Score(ScoreInput{
		Skills:      []string{"python", "pytorch"},
		Description: "Looking for Python and TensorFlow experience.",
	})

	assert.Equal(t, kernel.FitScore(50.0), result.Score)
	assert.Equal(t, kernel.ScoreMethodKeyword, result.Method)
	assert.Equal(t, []string{"python"}, result.MatchedSkills)
	assert.Equal(t, []string{"tensorflow"}, result.Gaps)
}

func TestKeywordScorer_EmptySkillsEverythingIsAGap(t *testing.T) {
	scorer := NewKeywordScorer()

	result := scorer.Score(ScoreInput{
		Skills:      nil,
		Description: "Python, Docker and Kubernetes required.",
	})

	assert.Equal(t, kernel.FitScore(0), result.Score)
	assert.Empty(t, result.MatchedSkills)
	assert.Equal(t, []string{"python", "docker", "kubernetes"}, result.Gaps)
}

func TestKeywordScorer_FullMatch(t *testing.T) {
	scorer := NewKeywordScorer()

	result := scorer.Score(ScoreInput{
		Skills:      []string{"Python", " Docker "},
		Description: "Must know python and docker.",
	})

	assert.Equal(t, kernel.FitScore(100), result.Score)
	assert.Equal(t, []string{"python", "docker"}, result.MatchedSkills)
	assert.Empty(t, result.Gaps)
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "word boundary blocks partial hits",
			text: "We use JavaScript heavily.",
			want: []string{"javascript"},
		},
		{
			name: "java matches as a whole word",
			text: "Senior Java engineer",
			want: []string{"java"},
		},
		{
			name: "symbol-bearing terms match as substrings",
			text: "C++ and C# experience, plus CI/CD pipelines",
			want: []string{"c++", "c#", "ci/cd"},
		},
		{
			name: "multi-word terms",
			text: "background in machine learning and data science",
			want: []string{"machine learning", "data science"},
		},
		{
			name: "deduplicated in vocabulary order",
			text: "docker docker kubernetes python",
			want: []string{"python", "docker", "kubernetes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKeywords(tt.text))
		})
	}
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, containsTerm("we love go and rust here", "rust"))
	assert.False(t, containsTerm("untrustworthy", "rust"))
	assert.False(t, containsTerm("javascript only", "java"))
	assert.True(t, containsTerm("java, javascript", "java"))
}
