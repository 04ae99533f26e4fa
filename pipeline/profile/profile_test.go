package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_ReplaceSkills(t *testing.T) {
	p := &Profile{Skills: []string{"java"}}

	p.ReplaceSkills([]string{" Python ", "python", "Docker", "", "docker"})

	assert.Equal(t, []string{"python", "docker"}, p.Skills)
}

func TestProfile_HasSkill(t *testing.T) {
	p := &Profile{Skills: []string{"python", "docker"}}

	assert.True(t, p.HasSkill("Python"))
	assert.True(t, p.HasSkill(" docker "))
	assert.False(t, p.HasSkill("rust"))
}

func TestProfile_NarrativeText(t *testing.T) {
	p := &Profile{
		Summary:    "Backend engineer.",
		Experience: "Five years at Acme.",
		Skills:     []string{"python", "docker"},
	}

	text := p.NarrativeText()
	assert.Contains(t, text, "Backend engineer.")
	assert.Contains(t, text, "Five years at Acme.")
	assert.Contains(t, text, "Skills: python, docker")

	assert.Empty(t, (&Profile{}).NarrativeText())
}

func TestProfile_Validate(t *testing.T) {
	valid := &Profile{FullName: "Dana Smith", Email: "dana@example.com"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Profile{Email: "dana@example.com"}).Validate())
	assert.Error(t, (&Profile{FullName: "Dana Smith", Email: "not-an-email"}).Validate())
}
