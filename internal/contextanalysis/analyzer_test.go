package contextanalysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

func TestAnalyze_LoveBuildingAPIs(t *testing.T) {
	a := New(nil)
	got, err := a.Analyze("I love building scalable APIs and leading engineering teams.")
	require.NoError(t, err)

	assert.Equal(t, model.SentimentPositive, got.Sentiment)
	assert.Contains(t, got.Topics, "Leadership")
	assert.Contains(t, got.Topics, "Technology")
	assert.Equal(t, 9, got.WordCount)
	assert.Equal(t, []string{"love", "building", "scalable", "apis", "leading", "engineering", "teams"}, got.Keywords)
	assert.Equal(t, []string{"api", "apis", "engineering", "scalable"}, got.ProfessionalTerms)
	assert.Equal(t, []string{"Technology"}, got.Industries)
	assert.InDelta(t, 28.5, got.ReadabilityScore, 0.01)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
}

func TestAnalyze_KeywordsRankedByFrequencyThenFirstSeen(t *testing.T) {
	a := New(nil)
	got, err := a.Analyze("Rust rust golang. Python golang rust! Zig python, java kotlin swift scala elixir haskell ocaml")
	require.NoError(t, err)
	require.Len(t, got.Keywords, 10)
	assert.Equal(t, []string{"rust", "golang", "python", "java", "kotlin", "swift", "scala", "elixir", "haskell", "ocaml"}, got.Keywords,
		"three-letter words are dropped, ties keep first-seen order")
}

func TestAnalyze_Sentiment(t *testing.T) {
	a := New(nil)
	tests := []struct {
		text string
		want model.Sentiment
	}{
		{"This was a terrible and frustrating quarter.", model.SentimentNegative},
		{"We shipped the release on Tuesday.", model.SentimentNeutral},
		{"Great team, but a difficult launch.", model.SentimentNeutral},
		{"Proud of this amazing, rewarding launch despite a bad start.", model.SentimentPositive},
	}
	for _, tt := range tests {
		got, err := a.Analyze(tt.text)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.Sentiment, tt.text)
	}
}

func TestAnalyze_ReadabilityAlwaysClamped(t *testing.T) {
	a := New(nil)
	for _, text := range []string{
		"",
		"Hi.",
		"...",
		"Supercalifragilisticexpialidocious",
		strings.Repeat("incomprehensibilities ", 200),
		"no terminator at all in this one",
	} {
		got, err := a.Analyze(text)
		require.NoError(t, err, text)
		assert.GreaterOrEqual(t, got.ReadabilityScore, 0.0, text)
		assert.LessOrEqual(t, got.ReadabilityScore, 100.0, text)
	}

	got, _ := a.Analyze("")
	assert.Zero(t, got.ReadabilityScore)
	got, _ = a.Analyze("Hi.")
	assert.Equal(t, 100.0, got.ReadabilityScore)
	got, _ = a.Analyze("Supercalifragilisticexpialidocious")
	assert.Equal(t, 0.0, got.ReadabilityScore)
}

func TestAnalyze_ConfidenceBounds(t *testing.T) {
	a := New(nil)
	got, err := a.Analyze("Short note.")
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Confidence)

	long := strings.Repeat("Leading cloud software engineering teams through strategy, analytics and product design. ", 20) +
		"Mentoring developers, building dashboards, shaping roadmaps and growing revenue for startups."
	got, err = a.Analyze(long)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Confidence, "all bonuses apply and the total is capped")
	assert.GreaterOrEqual(t, len(got.ProfessionalTerms), 3)
}

func TestAnalyze_RejectsBinary(t *testing.T) {
	_, err := New(nil).Analyze("\x00\x01\x02 binary")
	assert.True(t, model.IsAnalysisError(err))
	_, err = New(nil).Analyze(string([]byte{0xff, 0xfe, 0xfd}))
	assert.True(t, model.IsAnalysisError(err))
}

func TestInsights(t *testing.T) {
	a := New(nil)

	sparse, err := a.Analyze("I write code.")
	require.NoError(t, err)
	in := a.Insights(sparse)
	assert.Contains(t, in.Suggestions, "Add more detail about your experience, achievements and goals")
	assert.Contains(t, in.Suggestions, "Mention the industry or industries you work in")
	assert.Contains(t, in.Suggestions, "Include more specific skills, tools or methods you use")
	assert.Contains(t, in.Suggestions, "Highlight leadership experience such as leading teams or mentoring")
	assert.Contains(t, in.Suggestions, "Highlight strategic thinking and long-term planning")
	assert.Equal(t, []string{"Leadership", "Innovation", "Strategy", "Communication", "Problem Solving", "Collaboration"}, in.MissingAreas)
	assert.NotNil(t, in.Strengths)

	rich := model.ContextAnalysis{
		Topics:            []string{"Leadership", "Strategy", "Technology"},
		Sentiment:         model.SentimentPositive,
		WordCount:         150,
		ReadabilityScore:  65,
		ProfessionalTerms: []string{"api", "cloud", "strategy"},
		Industries:        []string{"Technology", "Finance"},
	}
	in = a.Insights(rich)
	assert.Empty(t, in.Suggestions)
	assert.Contains(t, in.Strengths, "Clear industry focus: Technology, Finance")
	assert.Contains(t, in.Strengths, "Detailed professional context (150 words)")
	assert.Equal(t, []string{"Innovation", "Communication", "Problem Solving", "Collaboration"}, in.MissingAreas)
}
