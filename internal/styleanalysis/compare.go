package styleanalysis

import (
	"fmt"
	"math"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/textstats"
)

// Comparison weights; they sum to 1.
const (
	weightTone        = 0.2
	weightFormality   = 0.15
	weightVocabulary  = 0.15
	weightSentenceLen = 0.1
	weightTopics      = 0.2
	weightPersonality = 0.2

	maxSentenceLenGap = 5
	weakOverlap       = 0.5
)

// Compare scores how closely b's style matches a's. Differences name each
// dimension that failed or overlapped weakly; recommendations describe how to
// move from a toward b.
func Compare(a, b model.WritingStyleProfile) model.StyleComparison {
	out := model.StyleComparison{Differences: []string{}, Recommendations: []string{}}
	score := 0.0

	if a.Tone == b.Tone {
		score += weightTone
	} else {
		out.Differences = append(out.Differences, fmt.Sprintf("Tone: %s vs %s", a.Tone, b.Tone))
		out.Recommendations = append(out.Recommendations, fmt.Sprintf("Adjust word choice toward a more %s tone", b.Tone))
	}

	if a.Formality == b.Formality {
		score += weightFormality
	} else {
		out.Differences = append(out.Differences, fmt.Sprintf("Formality: %s vs %s", a.Formality, b.Formality))
		out.Recommendations = append(out.Recommendations, formalityAdvice(b.Formality))
	}

	if a.Vocabulary.Complexity == b.Vocabulary.Complexity {
		score += weightVocabulary
	} else {
		out.Differences = append(out.Differences, fmt.Sprintf("Vocabulary complexity: %s vs %s", a.Vocabulary.Complexity, b.Vocabulary.Complexity))
		out.Recommendations = append(out.Recommendations, fmt.Sprintf("Aim for %s vocabulary", b.Vocabulary.Complexity))
	}

	gap := int(math.Abs(float64(a.SentenceStructure.AverageLength - b.SentenceStructure.AverageLength)))
	if gap < maxSentenceLenGap {
		score += weightSentenceLen
	} else {
		out.Differences = append(out.Differences, fmt.Sprintf("Average sentence length differs by %d words", gap))
		if a.SentenceStructure.AverageLength > b.SentenceStructure.AverageLength {
			out.Recommendations = append(out.Recommendations, "Use shorter sentences")
		} else {
			out.Recommendations = append(out.Recommendations, "Combine ideas into longer sentences")
		}
	}

	topics := textstats.Jaccard(a.ContentThemes.PrimaryTopics, b.ContentThemes.PrimaryTopics)
	score += weightTopics * topics
	if topics < weakOverlap {
		out.Differences = append(out.Differences, fmt.Sprintf("Topic overlap is low (%.2f)", topics))
		out.Recommendations = append(out.Recommendations, "Write about more of the same core topics")
	}

	personality := textstats.Jaccard(a.BrandVoice.Personality, b.BrandVoice.Personality)
	score += weightPersonality * personality
	if personality < weakOverlap {
		out.Differences = append(out.Differences, fmt.Sprintf("Brand personality overlap is low (%.2f)", personality))
		out.Recommendations = append(out.Recommendations, "Bring out the same personality traits in your writing")
	}

	out.Similarity = textstats.Round(textstats.Clamp(score, 0, 1), 2)
	return out
}

func formalityAdvice(target string) string {
	switch target {
	case model.FormalityFormal:
		return "Use more formal connectives and avoid contractions"
	case model.FormalityCasual:
		return "Use a more relaxed, conversational register"
	}
	return "Balance formal and conversational language"
}
