// Package styleanalysis builds a writing style profile from one or more
// samples and compares profiles. The profile is always recomputed from the
// full sample set; there is no incremental state.
package styleanalysis

import (
	"strings"
	"unicode/utf8"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/lexicon"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/textstats"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/validate"
)

const (
	toneNeutral          = "neutral"
	styleNarrative       = "narrative"
	styleAnalytical      = "analytical"
	styleDirect          = "direct"
	maxCommonWords       = 20
	maxUniqueWords       = 10
	maxPreferredFormats  = 3
	maxCommonPhrases     = 5
	minPrimaryTopicMatch = 2
)

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

// features is the intermediate tokenization shared by every dimension.
type features struct {
	text      string
	lower     string
	words     []string
	letters   []string
	sentences []int // word count per sentence
}

func extract(samples []model.StyleSample) features {
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		parts = append(parts, s.Content)
	}
	text := strings.Join(parts, "\n\n")
	f := features{
		text:    text,
		lower:   strings.ToLower(text),
		words:   textstats.Words(text),
		letters: textstats.LetterWords(text),
	}
	for _, s := range textstats.Sentences(text) {
		f.sentences = append(f.sentences, len(textstats.Words(s)))
	}
	return f
}

// Analyze computes a profile over every sample. OwnerID and LastAnalyzed are
// left for the caller to set.
func (a *Analyzer) Analyze(samples []model.StyleSample) (model.WritingStyleProfile, error) {
	if len(samples) == 0 {
		return model.WritingStyleProfile{}, model.NewValidationError("samples", "at least one sample is required")
	}
	for _, s := range samples {
		if err := validate.Text(s.Content); err != nil {
			return model.WritingStyleProfile{}, err
		}
	}

	f := extract(samples)
	vocab, onceCount := a.vocabulary(f)
	structure := sentenceStructure(f)
	themes := a.contentThemes(f)

	p := model.WritingStyleProfile{
		Tone:              a.tone(f),
		Formality:         a.formality(f),
		Vocabulary:        vocab,
		SentenceStructure: structure,
		WritingPatterns:   a.writingPatterns(f, samples),
		ContentThemes:     themes,
		Engagement:        a.engagement(f),
		BrandVoice:        a.brandVoice(f, themes),
		SampleCount:       len(samples),
	}
	p.Confidence = confidence(len(samples), len(f.words), onceCount, structure.Variety)
	return p, nil
}

// tone picks the category with the highest phrase count. Ties go to the
// earlier category in the table; no hits at all is "neutral".
func (a *Analyzer) tone(f features) string {
	best, bestScore := toneNeutral, 0
	for _, c := range a.tables.Tones {
		if score := textstats.CountWords(f.lower, c.Keywords); score > bestScore {
			best, bestScore = c.Name, score
		}
	}
	return best
}

func (a *Analyzer) formality(f features) string {
	formal := textstats.CountWords(f.lower, a.tables.FormalIndicators)
	casual := textstats.CountWords(f.lower, a.tables.CasualIndicators) +
		len(a.tables.Contraction.FindAllStringIndex(f.lower, -1))

	avg, _ := textstats.MeanStdev(toFloats(f.sentences))
	if avg > 20 {
		formal++
	}
	if avg < 12 {
		casual++
	}
	switch {
	case formal-casual > 1:
		return model.FormalityFormal
	case casual-formal > 1:
		return model.FormalityCasual
	}
	return model.FormalitySemiFormal
}

// vocabulary also returns how many distinct words occur exactly once,
// before uniqueWords is truncated.
func (a *Analyzer) vocabulary(f features) (model.Vocabulary, int) {
	totalLen := 0
	for _, w := range f.letters {
		totalLen += utf8.RuneCountInString(w)
	}
	avgLen := 0.0
	if len(f.letters) > 0 {
		avgLen = float64(totalLen) / float64(len(f.letters))
	}

	v := model.Vocabulary{
		Complexity:     "complex",
		TechnicalLevel: "basic",
		CommonWords:    []string{},
		UniqueWords:    []string{},
	}
	switch {
	case avgLen < 4.5:
		v.Complexity = "simple"
	case avgLen < 6:
		v.Complexity = "moderate"
	}
	switch n := len(textstats.Present(f.lower, a.tables.TechnicalTerms)); {
	case n >= 3:
		v.TechnicalLevel = "advanced"
	case n >= 1:
		v.TechnicalLevel = "intermediate"
	}

	var long []string
	for _, w := range f.letters {
		if utf8.RuneCountInString(w) > 3 {
			long = append(long, w)
		}
	}
	ranked, counts := textstats.RankByFrequency(long)
	v.CommonWords = textstats.TopN(ranked, maxCommonWords)
	once := 0
	for _, w := range ranked {
		if counts[w] == 1 {
			once++
			if len(v.UniqueWords) < maxUniqueWords {
				v.UniqueWords = append(v.UniqueWords, w)
			}
		}
	}
	return v, once
}

func sentenceStructure(f features) model.SentenceStructure {
	mean, stdev := textstats.MeanStdev(toFloats(f.sentences))
	s := model.SentenceStructure{AverageLength: int(textstats.Round(mean, 0))}
	switch {
	case s.AverageLength < 12:
		s.Complexity = "simple"
	case s.AverageLength < 18:
		s.Complexity = "compound"
	default:
		s.Complexity = "complex"
	}
	if mean > 0 {
		s.Variety = textstats.Round(textstats.Clamp(stdev/mean, 0, 1), 2)
	}
	return s
}

func (a *Analyzer) writingPatterns(f features, samples []model.StyleSample) model.WritingPatterns {
	var types []string
	for _, s := range samples {
		if s.ContentType != "" {
			types = append(types, s.ContentType)
		}
	}
	rankedTypes, _ := textstats.RankByFrequency(types)

	return model.WritingPatterns{
		PreferredFormats:  textstats.TopN(rankedTypes, maxPreferredFormats),
		CommonPhrases:     commonPhrases(textstats.NormalizedWords(f.text)),
		TransitionWords:   textstats.Present(f.lower, a.tables.TransitionWords),
		CallToActionStyle: textstats.Present(f.lower, a.tables.CallToAction),
	}
}

// commonPhrases returns repeated three-word windows longer than ten characters.
func commonPhrases(tokens []string) []string {
	var phrases []string
	for i := 0; i+3 <= len(tokens); i++ {
		p := strings.Join(tokens[i:i+3], " ")
		if utf8.RuneCountInString(p) > 10 {
			phrases = append(phrases, p)
		}
	}
	ranked, counts := textstats.RankByFrequency(phrases)
	out := []string{}
	for _, p := range ranked {
		if counts[p] > 1 && len(out) < maxCommonPhrases {
			out = append(out, p)
		}
	}
	return out
}

func (a *Analyzer) contentThemes(f features) model.ContentThemes {
	topics := []string{}
	for _, c := range a.tables.Topics {
		if len(textstats.Present(f.lower, c.Keywords)) >= minPrimaryTopicMatch {
			topics = append(topics, c.Name)
		}
	}
	return model.ContentThemes{
		PrimaryTopics: topics,
		Expertise:     textstats.Present(f.lower, a.tables.Expertise),
		Perspectives:  textstats.Present(f.lower, a.tables.Perspectives),
	}
}

func (a *Analyzer) engagement(f features) model.Engagement {
	e := model.Engagement{
		StorytellingElements: a.tables.Storytelling.MatchString(f.lower),
		PersonalAnecdotes:    a.tables.Personal.MatchString(f.lower),
		DataUsage:            a.tables.DataUsage.MatchString(f.lower),
	}
	if n := len(f.sentences); n > 0 {
		q := float64(strings.Count(f.text, "?")) / float64(n)
		e.QuestionUsage = textstats.Round(textstats.Clamp(q, 0, 1), 2)
	}
	return e
}

func (a *Analyzer) brandVoice(f features, themes model.ContentThemes) model.BrandVoice {
	bv := model.BrandVoice{
		Personality:        []string{},
		Values:             make([]string, 0, len(themes.PrimaryTopics)),
		CommunicationStyle: styleDirect,
	}
	for _, c := range a.tables.Personality {
		if textstats.CountWords(f.lower, c.Keywords) > 0 {
			bv.Personality = append(bv.Personality, c.Name)
		}
	}
	for _, t := range themes.PrimaryTopics {
		bv.Values = append(bv.Values, strings.ToLower(t))
	}
	switch {
	case len(textstats.Present(f.lower, a.tables.NarrativeWords)) > 0:
		bv.CommunicationStyle = styleNarrative
	case len(textstats.Present(f.lower, a.tables.AnalyticalWords)) > 0:
		bv.CommunicationStyle = styleAnalytical
	}
	return bv
}

func confidence(samples, words, uniqueWords int, variety float64) float64 {
	c := 0.3
	switch {
	case samples >= 10:
		c += 0.3
	case samples >= 5:
		c += 0.2
	case samples >= 3:
		c += 0.1
	}
	switch {
	case words >= 1000:
		c += 0.2
	case words >= 500:
		c += 0.1
	}
	if uniqueWords >= 8 {
		c += 0.1
	}
	if variety >= 0.5 {
		c += 0.1
	}
	return textstats.Round(textstats.Clamp(c, 0, 1), 2)
}

func toFloats(xs []int) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
