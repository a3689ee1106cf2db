// Package contextanalysis derives keyword, topic, industry, sentiment,
// readability and confidence metrics from professional-context text.
// Everything here is pure and deterministic.
package contextanalysis

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/lexicon"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/textstats"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
)

const maxKeywords = 10

// Analyzer is safe for concurrent use.
type Analyzer struct {
	tables *lexicon.Tables
}

// New returns an Analyzer over tables, or the embedded defaults when nil.
func New(tables *lexicon.Tables) *Analyzer {
	if tables == nil {
		tables = lexicon.Default()
	}
	return &Analyzer{tables: tables}
}

// Analyze computes the metrics for text. Input that is not text yields a
// model.AnalysisError; length limits are the caller's concern.
func (a *Analyzer) Analyze(text string) (model.ContextAnalysis, error) {
	if err := validate.Text(text); err != nil {
		return model.ContextAnalysis{}, err
	}
	lower := strings.ToLower(text)
	words := textstats.Words(text)
	sentences := textstats.Sentences(text)

	keywords := a.keywords(text)
	terms := a.professionalTerms(lower)

	out := model.ContextAnalysis{
		Keywords:          keywords,
		Topics:            a.topics(lower, keywords),
		Sentiment:         a.sentiment(text),
		WordCount:         len(words),
		ReadabilityScore:  readability(words, len(sentences)),
		ProfessionalTerms: terms,
		Industries:        a.industries(lower),
	}
	out.Confidence = confidence(out.WordCount, len(keywords), len(sentences), len(terms))
	return out, nil
}

// keywords: normalized tokens longer than three characters that are not stop
// words, top ten by frequency with ties in first-seen order.
func (a *Analyzer) keywords(text string) []string {
	var candidates []string
	for _, w := range textstats.NormalizedWords(text) {
		if utf8.RuneCountInString(w) <= 3 || a.tables.IsStopWord(w) {
			continue
		}
		candidates = append(candidates, w)
	}
	ranked, _ := textstats.RankByFrequency(candidates)
	return textstats.TopN(ranked, maxKeywords)
}

func (a *Analyzer) professionalTerms(lower string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, c := range a.tables.ProfessionalTerms {
		for _, term := range textstats.Present(lower, c.Keywords) {
			if !seen[term] {
				seen[term] = true
				out = append(out, term)
			}
		}
	}
	return out
}

func (a *Analyzer) industries(lower string) []string {
	out := []string{}
	for _, c := range a.tables.Industries {
		if len(textstats.Present(lower, c.Keywords)) > 0 {
			out = append(out, c.Name)
		}
	}
	return out
}

// topics match when a topic keyword is a substring of the text or of an
// extracted keyword. Order follows the topic table.
func (a *Analyzer) topics(lower string, keywords []string) []string {
	out := []string{}
	for _, c := range a.tables.Topics {
		if matchesTopic(lower, keywords, c.Keywords) {
			out = append(out, c.Name)
		}
	}
	return out
}

func matchesTopic(lower string, keywords, topicWords []string) bool {
	for _, tw := range topicWords {
		if strings.Contains(lower, tw) {
			return true
		}
		for _, k := range keywords {
			if strings.Contains(k, tw) {
				return true
			}
		}
	}
	return false
}

// sentiment counts whole-word hits of the positive and negative lists.
func (a *Analyzer) sentiment(text string) model.Sentiment {
	var pos, neg int
	for _, w := range textstats.LetterWords(text) {
		if _, ok := a.tables.PositiveWords[w]; ok {
			pos++
		}
		if _, ok := a.tables.NegativeWords[w]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return model.SentimentPositive
	case neg > pos:
		return model.SentimentNegative
	}
	return model.SentimentNeutral
}

// readability is the Flesch Reading Ease approximation clamped to [0,100].
// No words scores 0; text without terminators counts as one sentence.
func readability(words []string, sentences int) float64 {
	if len(words) == 0 {
		return 0
	}
	if sentences < 1 {
		sentences = 1
	}
	syllables := 0
	for _, w := range words {
		syllables += textstats.Syllables(w)
	}
	wc := float64(len(words))
	score := 206.835 - 1.015*(wc/float64(sentences)) - 84.6*(float64(syllables)/wc)
	return textstats.Round(textstats.Clamp(score, 0, 100), 2)
}

func confidence(wordCount, keywordCount, sentenceCount, termCount int) float64 {
	c := 0.5
	switch {
	case wordCount >= 100:
		c += 0.2
	case wordCount >= 50:
		c += 0.1
	}
	switch {
	case keywordCount >= 8:
		c += 0.2
	case keywordCount >= 5:
		c += 0.1
	}
	if sentenceCount > 3 {
		c += 0.1
	}
	if termCount >= 3 {
		c += 0.1
	}
	return textstats.Round(textstats.Clamp(c, 0, 1), 2)
}

// Insights derives strengths, suggestions and missing core areas from an
// analysis. Nothing is persisted.
func (a *Analyzer) Insights(an model.ContextAnalysis) model.ContextInsights {
	out := model.ContextInsights{Strengths: []string{}, Suggestions: []string{}, MissingAreas: []string{}}

	if an.WordCount >= 100 {
		out.Strengths = append(out.Strengths, fmt.Sprintf("Detailed professional context (%d words)", an.WordCount))
	}
	if len(an.ProfessionalTerms) >= 3 {
		out.Strengths = append(out.Strengths, "Strong use of professional terminology")
	}
	if len(an.Industries) > 0 {
		out.Strengths = append(out.Strengths, "Clear industry focus: "+strings.Join(an.Industries, ", "))
	}
	if len(an.Topics) >= 3 {
		out.Strengths = append(out.Strengths, "Covers a broad range of professional topics")
	}
	if an.Sentiment == model.SentimentPositive {
		out.Strengths = append(out.Strengths, "Positive, confident tone")
	}
	if an.ReadabilityScore >= 60 {
		out.Strengths = append(out.Strengths, "Easy to read")
	}

	if an.WordCount < 50 {
		out.Suggestions = append(out.Suggestions, "Add more detail about your experience, achievements and goals")
	}
	if len(an.Industries) == 0 {
		out.Suggestions = append(out.Suggestions, "Mention the industry or industries you work in")
	}
	if len(an.ProfessionalTerms) < 3 {
		out.Suggestions = append(out.Suggestions, "Include more specific skills, tools or methods you use")
	}
	if !contains(an.Topics, "Leadership") {
		out.Suggestions = append(out.Suggestions, "Highlight leadership experience such as leading teams or mentoring")
	}
	if !contains(an.Topics, "Strategy") {
		out.Suggestions = append(out.Suggestions, "Highlight strategic thinking and long-term planning")
	}
	if an.Sentiment == model.SentimentNegative {
		out.Suggestions = append(out.Suggestions, "Frame challenges around what you learned and achieved")
	}
	if an.WordCount > 0 && an.ReadabilityScore < 30 {
		out.Suggestions = append(out.Suggestions, "Use shorter sentences and simpler words to improve readability")
	}

	for _, area := range a.tables.CoreAreas {
		if !contains(an.Topics, area) {
			out.MissingAreas = append(out.MissingAreas, area)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
