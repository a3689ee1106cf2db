package textstats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"no terminator", 1},
		{"One. Two! Three?", 3},
		{"Wait... what?!", 2},
		{"...!!!", 0},
	}
	for _, tt := range tests {
		assert.Len(t, Sentences(tt.text), tt.want, tt.text)
	}
}

func TestSyllables(t *testing.T) {
	assert.Equal(t, 1, Syllables("rhythm"), "y counts as a vowel")
	assert.Equal(t, 1, Syllables("bcd"), "minimum of one")
	assert.Equal(t, 3, Syllables("Beautiful"))
	assert.Equal(t, 2, Syllables("reading"))
}

func TestNormalizedWords(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "its", "42"}, NormalizedWords("Hello, WORLD! It's 42."))
}

func TestLetterWords(t *testing.T) {
	assert.Equal(t, []string{"hi", "there"}, LetterWords("Hi 123 there!"))
}

func TestRankByFrequency_TiesKeepFirstSeenOrder(t *testing.T) {
	ranked, counts := RankByFrequency([]string{"b", "a", "c", "a", "b", "d"})
	assert.Equal(t, []string{"b", "a", "c", "d"}, ranked)
	assert.Equal(t, 2, counts["a"])
	assert.Equal(t, []string{"b", "a"}, TopN(ranked, 2))
	assert.Len(t, TopN(ranked, 10), 4)
}

func TestPresentAndCount(t *testing.T) {
	text := "however we moved on. however, in fact it worked"
	assert.Equal(t, []string{"however", "in fact"}, Present(text, []string{"however", "moreover", "in fact", "however"}))
	assert.Equal(t, 3, CountOccurrences(text, []string{"however", "in fact", ""}))
}

func TestCountWords(t *testing.T) {
	text := "hi there, this is hi-fi. so, right? honestly so"
	assert.Equal(t, 2, CountWords(text, []string{"hi"}), "not inside this")
	assert.Equal(t, 1, CountWords(text, []string{"so,"}))
	assert.Equal(t, 1, CountWords(text, []string{"right?"}))
	assert.Equal(t, 3, CountWords(text, []string{"so", "honestly", ""}))
	assert.Equal(t, 0, CountWords("", []string{"a"}))
	assert.Equal(t, 1, CountWords("café au lait", []string{"café"}))
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard(nil, nil))
	assert.Equal(t, 0.0, Jaccard([]string{"a"}, nil))
	assert.InDelta(t, 1.0/3.0, Jaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
	assert.Equal(t, 1.0, Jaccard([]string{"a", "a", "b"}, []string{"b", "a"}))
}

func TestMeanStdev(t *testing.T) {
	mean, sd := MeanStdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, sd, 1e-9)

	mean, sd = MeanStdev(nil)
	assert.Zero(t, mean)
	assert.Zero(t, sd)
}

func TestRoundAndClamp(t *testing.T) {
	assert.Equal(t, 0.33, Round(1.0/3.0, 2))
	assert.Equal(t, 0.0, Clamp(-3, 0, 1))
	assert.Equal(t, 100.0, Clamp(250, 0, 100))
	assert.Equal(t, 0.0, Clamp(math.NaN(), 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
