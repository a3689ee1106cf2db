package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_EmbeddedTablesDecode(t *testing.T) {
	tbl := Default()
	require.NotNil(t, tbl)
	assert.NotEmpty(t, tbl.Version)

	var topics []string
	for _, c := range tbl.Topics {
		topics = append(topics, c.Name)
	}
	assert.Equal(t, []string{
		"Leadership", "Innovation", "Growth", "Strategy",
		"Technology", "Communication", "Problem Solving", "Collaboration",
	}, topics)

	var tones []string
	for _, c := range tbl.Tones {
		tones = append(tones, c.Name)
	}
	assert.Equal(t, []string{"professional", "friendly", "authoritative", "conversational", "inspirational"}, tones)

	var traits []string
	for _, c := range tbl.Personality {
		traits = append(traits, c.Name)
	}
	assert.Equal(t, []string{"authentic", "innovative", "reliable", "passionate", "analytical"}, traits)

	assert.True(t, tbl.IsStopWord("there"))
	assert.False(t, tbl.IsStopWord("engineering"))
	assert.Contains(t, tbl.PositiveWords, "love")
}

func TestDefault_Patterns(t *testing.T) {
	tbl := Default()
	assert.True(t, tbl.Storytelling.MatchString("years ago i started"))
	assert.True(t, tbl.Personal.MatchString("this is my team"))
	assert.True(t, tbl.DataUsage.MatchString("grew revenue 40% in a year"))
	assert.True(t, tbl.Contraction.MatchString("we don't stop"))
	assert.False(t, tbl.Contraction.MatchString("we do not stop"))
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "version: [unclosed"},
		{"missing version", "topics: [{name: A, keywords: [a]}]"},
		{"missing tones", "version: x\ntopics: [{name: A, keywords: [a]}]"},
		{"bad pattern", "version: x\ntopics: [{name: A, keywords: [a]}]\ntones: [{name: t, phrases: [p]}]\npatterns: {storytelling: '(', personal: a, data: b, contraction: c}"},
		{"missing pattern", "version: x\ntopics: [{name: A, keywords: [a]}]\ntones: [{name: t, phrases: [p]}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
		})
	}
}
