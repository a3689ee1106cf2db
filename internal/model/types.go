package model

import "time"

// DocumentType partitions the document store.
type DocumentType string

const (
	DocumentTypeContent       DocumentType = "content"
	DocumentTypeContext       DocumentType = "context"
	DocumentTypeTrend         DocumentType = "trend"
	DocumentTypeCompetitor    DocumentType = "competitor"
	DocumentTypeWritingSample DocumentType = "writing_sample"
	DocumentTypeProject       DocumentType = "project"
)

// DocumentTypes lists every accepted document type.
var DocumentTypes = []DocumentType{
	DocumentTypeContent,
	DocumentTypeContext,
	DocumentTypeTrend,
	DocumentTypeCompetitor,
	DocumentTypeWritingSample,
	DocumentTypeProject,
}

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	for _, known := range DocumentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Document is a content record with its embedding. Embeddings are only retained here.
type Document struct {
	ID           string                 `json:"id"`
	OwnerID      string                 `json:"ownerId"`
	Content      string                 `json:"content"`
	DocumentType DocumentType           `json:"documentType"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	Embedding    []float32              `json:"embedding,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// NewDocument is the input for storing a document.
type NewDocument struct {
	OwnerID      string                 `json:"ownerId"`
	Content      string                 `json:"content"`
	DocumentType DocumentType           `json:"documentType"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// DocumentPatch carries optional changes for an update. Nil fields are left untouched.
type DocumentPatch struct {
	Content  *string                `json:"content,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchQuery describes a text similarity search.
// Empty OwnerID or DocumentType means no filter on that field.
type SearchQuery struct {
	Query        string       `json:"query"`
	OwnerID      string       `json:"ownerId,omitempty"`
	DocumentType DocumentType `json:"documentType,omitempty"`
	Limit        int          `json:"limit"`
	Threshold    float64      `json:"threshold"`
}

// VectorQuery is the store-level form of a similarity search.
type VectorQuery struct {
	Vector       []float32
	OwnerID      string
	DocumentType DocumentType
	ExcludeID    string
	Limit        int
	Threshold    float64
}

// SearchResult pairs a document with its similarity to the query in [0,1].
type SearchResult struct {
	Document   *Document `json:"document"`
	Similarity float64   `json:"similarity"`
}

// Category names a versioned history stream per owner.
type Category string

const (
	CategoryContext      Category = "context"
	CategoryWritingStyle Category = "writing_style"
)

// VersionRecord is one immutable entry of an owner's per-category history.
type VersionRecord struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Category  Category  `json:"category"`
	Version   int       `json:"version"`
	Content   string    `json:"content"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sentiment of analyzed text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ContextAnalysis holds the metrics derived from professional-context text.
type ContextAnalysis struct {
	Keywords          []string  `json:"keywords"`
	Topics            []string  `json:"topics"`
	Sentiment         Sentiment `json:"sentiment"`
	Confidence        float64   `json:"confidence"`
	WordCount         int       `json:"wordCount"`
	ReadabilityScore  float64   `json:"readabilityScore"`
	ProfessionalTerms []string  `json:"professionalTerms"`
	Industries        []string  `json:"industries"`
}

// ContextSnapshot is an immutable, versioned analysis of an owner's context text.
type ContextSnapshot struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Version   int             `json:"version"`
	Content   string          `json:"content"`
	Analysis  ContextAnalysis `json:"analysis"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ContextInsights is derived from the latest snapshot and never persisted.
type ContextInsights struct {
	Strengths    []string `json:"strengths"`
	Suggestions  []string `json:"suggestions"`
	MissingAreas []string `json:"missingAreas"`
}

// StyleSample is one piece of writing used to build a style profile.
type StyleSample struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Content     string    `json:"content"`
	Platform    string    `json:"platform"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Formality buckets.
const (
	FormalityFormal     = "formal"
	FormalitySemiFormal = "semi-formal"
	FormalityCasual     = "casual"
)

type Vocabulary struct {
	Complexity     string   `json:"complexity"`
	TechnicalLevel string   `json:"technicalLevel"`
	CommonWords    []string `json:"commonWords"`
	UniqueWords    []string `json:"uniqueWords"`
}

type SentenceStructure struct {
	AverageLength int     `json:"averageLength"`
	Complexity    string  `json:"complexity"`
	Variety       float64 `json:"variety"`
}

type WritingPatterns struct {
	PreferredFormats  []string `json:"preferredFormats"`
	CommonPhrases     []string `json:"commonPhrases"`
	TransitionWords   []string `json:"transitionWords"`
	CallToActionStyle []string `json:"callToActionStyle"`
}

type ContentThemes struct {
	PrimaryTopics []string `json:"primaryTopics"`
	Expertise     []string `json:"expertise"`
	Perspectives  []string `json:"perspectives"`
}

type Engagement struct {
	QuestionUsage        float64 `json:"questionUsage"`
	StorytellingElements bool    `json:"storytellingElements"`
	PersonalAnecdotes    bool    `json:"personalAnecdotes"`
	DataUsage            bool    `json:"dataUsage"`
}

type BrandVoice struct {
	Personality        []string `json:"personality"`
	Values             []string `json:"values"`
	CommunicationStyle string   `json:"communication_style"`
}

// WritingStyleProfile describes an owner's voice across all of their samples.
type WritingStyleProfile struct {
	OwnerID           string            `json:"ownerId"`
	Tone              string            `json:"tone"`
	Formality         string            `json:"formality"`
	Vocabulary        Vocabulary        `json:"vocabulary"`
	SentenceStructure SentenceStructure `json:"sentenceStructure"`
	WritingPatterns   WritingPatterns   `json:"writingPatterns"`
	ContentThemes     ContentThemes     `json:"contentThemes"`
	Engagement        Engagement        `json:"engagement"`
	BrandVoice        BrandVoice        `json:"brandVoice"`
	Confidence        float64           `json:"confidence"`
	SampleCount       int               `json:"sampleCount"`
	LastAnalyzed      time.Time         `json:"lastAnalyzed"`
}

// StyleComparison is the outcome of comparing two style profiles.
type StyleComparison struct {
	Similarity      float64  `json:"similarity"`
	Differences     []string `json:"differences"`
	Recommendations []string `json:"recommendations"`
}
