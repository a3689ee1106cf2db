// Package lexicon holds the versioned keyword and phrase tables used by the
// context and writing-style analyzers. The tables are data (tables.yaml) so
// both analyzers read the same lists.
package lexicon

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// Category is an ordered, named keyword list. Order matters for tie-breaks.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type termCategory struct {
	Name  string   `yaml:"name"`
	Terms []string `yaml:"terms"`
}

type toneCategory struct {
	Name    string   `yaml:"name"`
	Phrases []string `yaml:"phrases"`
}

type traitCategory struct {
	Name       string   `yaml:"name"`
	Indicators []string `yaml:"indicators"`
}

type rawTables struct {
	Version           string         `yaml:"version"`
	StopWords         []string       `yaml:"stop_words"`
	ProfessionalTerms []termCategory `yaml:"professional_terms"`
	Industries        []Category     `yaml:"industries"`
	Topics            []Category     `yaml:"topics"`
	CoreAreas         []string       `yaml:"core_areas"`
	Sentiment         struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
	Tones     []toneCategory `yaml:"tones"`
	Formality struct {
		Formal []string `yaml:"formal"`
		Casual []string `yaml:"casual"`
	} `yaml:"formality"`
	TechnicalTerms  []string `yaml:"technical_terms"`
	TransitionWords []string `yaml:"transition_words"`
	CallToAction    []string `yaml:"call_to_action"`
	Expertise       []string `yaml:"expertise"`
	Perspectives    []string `yaml:"perspectives"`
	Patterns        struct {
		Storytelling string `yaml:"storytelling"`
		Personal     string `yaml:"personal"`
		Data         string `yaml:"data"`
		Contraction  string `yaml:"contraction"`
	} `yaml:"patterns"`
	Personality        []traitCategory `yaml:"personality"`
	CommunicationStyle struct {
		Narrative  []string `yaml:"narrative"`
		Analytical []string `yaml:"analytical"`
	} `yaml:"communication_style"`
}

// Tables is the decoded, ready-to-use form of a lexicon file.
type Tables struct {
	Version string

	StopWords         map[string]struct{}
	ProfessionalTerms []Category
	Industries        []Category
	Topics            []Category
	CoreAreas         []string

	PositiveWords map[string]struct{}
	NegativeWords map[string]struct{}

	Tones            []Category
	FormalIndicators []string
	CasualIndicators []string

	TechnicalTerms  []string
	TransitionWords []string
	CallToAction    []string
	Expertise       []string
	Perspectives    []string

	Storytelling *regexp.Regexp
	Personal     *regexp.Regexp
	DataUsage    *regexp.Regexp
	Contraction  *regexp.Regexp

	Personality     []Category
	NarrativeWords  []string
	AnalyticalWords []string
}

var (
	defaultOnce sync.Once
	defaultTbl  *Tables
)

// Default returns the tables compiled into the binary. It panics if the
// embedded file is malformed, which is caught by the package tests.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Parse(defaultTables)
		if err != nil {
			panic(fmt.Sprintf("lexicon: embedded tables: %v", err))
		}
		defaultTbl = t
	})
	return defaultTbl
}

// Parse decodes and validates a lexicon document.
func Parse(data []byte) (*Tables, error) {
	var raw rawTables
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if raw.Version == "" {
		return nil, fmt.Errorf("lexicon version is required")
	}
	if len(raw.Topics) == 0 || len(raw.Tones) == 0 {
		return nil, fmt.Errorf("lexicon %s: topics and tones are required", raw.Version)
	}

	t := &Tables{
		Version:          raw.Version,
		StopWords:        toSet(raw.StopWords),
		Industries:       raw.Industries,
		Topics:           raw.Topics,
		CoreAreas:        raw.CoreAreas,
		PositiveWords:    toSet(raw.Sentiment.Positive),
		NegativeWords:    toSet(raw.Sentiment.Negative),
		FormalIndicators: raw.Formality.Formal,
		CasualIndicators: raw.Formality.Casual,
		TechnicalTerms:   raw.TechnicalTerms,
		TransitionWords:  raw.TransitionWords,
		CallToAction:     raw.CallToAction,
		Expertise:        raw.Expertise,
		Perspectives:     raw.Perspectives,
		NarrativeWords:   raw.CommunicationStyle.Narrative,
		AnalyticalWords:  raw.CommunicationStyle.Analytical,
	}
	for _, c := range raw.ProfessionalTerms {
		t.ProfessionalTerms = append(t.ProfessionalTerms, Category{Name: c.Name, Keywords: c.Terms})
	}
	for _, c := range raw.Tones {
		t.Tones = append(t.Tones, Category{Name: c.Name, Keywords: c.Phrases})
	}
	for _, c := range raw.Personality {
		t.Personality = append(t.Personality, Category{Name: c.Name, Keywords: c.Indicators})
	}

	patterns := []struct {
		name string
		src  string
		dst  **regexp.Regexp
	}{
		{"storytelling", raw.Patterns.Storytelling, &t.Storytelling},
		{"personal", raw.Patterns.Personal, &t.Personal},
		{"data", raw.Patterns.Data, &t.DataUsage},
		{"contraction", raw.Patterns.Contraction, &t.Contraction},
	}
	for _, p := range patterns {
		if p.src == "" {
			return nil, fmt.Errorf("lexicon %s: pattern %s is required", raw.Version, p.name)
		}
		re, err := regexp.Compile(p.src)
		if err != nil {
			return nil, fmt.Errorf("lexicon %s: pattern %s: %w", raw.Version, p.name, err)
		}
		*p.dst = re
	}
	return t, nil
}

// IsStopWord reports whether w (lowercase) is in the stop-word list.
func (t *Tables) IsStopWord(w string) bool {
	_, ok := t.StopWords[w]
	return ok
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
