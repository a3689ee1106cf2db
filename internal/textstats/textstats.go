// Package textstats contains the tokenization and scoring helpers shared by
// the analyzers. Everything here is pure and safe for concurrent use.
package textstats

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	nonWordRx    = regexp.MustCompile(`[^\p{L}\p{N}_\s]+`)
	sentenceRx   = regexp.MustCompile(`[.!?]+`)
	vowelGroupRx = regexp.MustCompile(`[aeiouy]+`)
	nonLetterRx  = regexp.MustCompile(`[^\p{L}]+`)
)

// Words splits on whitespace. The word count of a text is len(Words(text)).
func Words(text string) []string {
	return strings.Fields(text)
}

// NormalizedWords lowercases text, strips non-word characters and splits on whitespace.
func NormalizedWords(text string) []string {
	return strings.Fields(nonWordRx.ReplaceAllString(strings.ToLower(text), ""))
}

// LetterWords lowercases each whitespace token and keeps only its letters; empty results are dropped.
func LetterWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if w = nonLetterRx.ReplaceAllString(w, ""); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Sentences returns the non-empty segments of text delimited by runs of . ! or ?.
func Sentences(text string) []string {
	var out []string
	for _, s := range sentenceRx.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Syllables approximates the syllable count of word as its number of vowel groups, minimum 1.
func Syllables(word string) int {
	n := len(vowelGroupRx.FindAllStringIndex(strings.ToLower(word), -1))
	if n < 1 {
		return 1
	}
	return n
}

// Frequencies counts tokens and returns them in first-seen order.
func Frequencies(tokens []string) (order []string, counts map[string]int) {
	counts = make(map[string]int, len(tokens))
	for _, tok := range tokens {
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}
	return order, counts
}

// RankByFrequency orders distinct tokens by descending count, ties broken by first-seen order.
func RankByFrequency(tokens []string) ([]string, map[string]int) {
	order, counts := Frequencies(tokens)
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	return order, counts
}

// TopN returns at most n items of ranked.
func TopN(ranked []string, n int) []string {
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, len(ranked))
	copy(out, ranked)
	return out
}

// Present returns the phrases of list that occur as substrings of text, in list order.
func Present(text string, list []string) []string {
	out := []string{}
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if _, dup := seen[p]; dup {
			continue
		}
		if strings.Contains(text, p) {
			out = append(out, p)
			seen[p] = struct{}{}
		}
	}
	return out
}

// CountOccurrences sums the non-overlapping occurrences of every phrase in text.
func CountOccurrences(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if p != "" {
			n += strings.Count(text, p)
		}
	}
	return n
}

// CountWords sums the occurrences of every phrase in text that begin and end
// on a word boundary, so "hi" is not counted inside "this". Phrases that
// start or end with punctuation only need the boundary on their word side.
func CountWords(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if p == "" {
			continue
		}
		for i := 0; i <= len(text)-len(p); {
			j := strings.Index(text[i:], p)
			if j < 0 {
				break
			}
			start, end := i+j, i+j+len(p)
			if boundaryBefore(text, start, p) && boundaryAfter(text, end, p) {
				n++
				i = end
				continue
			}
			i = start + 1
		}
	}
	return n
}

func boundaryBefore(text string, start int, p string) bool {
	first, _ := utf8.DecodeRuneInString(p)
	if !isWordRune(first) || start == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(prev)
}

func boundaryAfter(text string, end int, p string) bool {
	last, _ := utf8.DecodeLastRuneInString(p)
	if !isWordRune(last) || end >= len(text) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Clamp bounds x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	switch {
	case math.IsNaN(x), x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

// Jaccard returns |a∩b| / |a∪b| over the distinct elements. Two empty sets are identical (1).
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, v := range a {
		setA[v] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, v := range b {
		setB[v] = struct{}{}
	}
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	inter := 0
	for v := range setA {
		if _, ok := setB[v]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// MeanStdev returns the mean and population standard deviation of xs.
func MeanStdev(xs []float64) (mean, stdev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}
