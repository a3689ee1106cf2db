// Package validate holds the input checks run before any embedding or
// persistence call. Failures are model.ValidationError or model.AnalysisError.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

const (
	// MinAnalysisLength is the minimum content length for a preview analysis.
	MinAnalysisLength = 10
	// MinPersistedLength is the minimum length for saved context and style samples.
	MinPersistedLength = 50
	// MaxContentLength bounds any single piece of content.
	MaxContentLength = 100_000
)

// owner ids are opaque account identifiers: letters, digits and _ . @ : - up to 128 chars
var ownerIDRx = regexp.MustCompile(`^[A-Za-z0-9_.@:\-]{1,128}$`)

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return model.NewValidationError(field, "is required")
	}
	return nil
}

// OwnerID validates an account identifier.
func OwnerID(v string) error {
	if v == "" {
		return model.NewValidationError("ownerId", "is required")
	}
	if !ownerIDRx.MatchString(v) {
		return model.NewValidationError("ownerId", "contains invalid characters; allowed letters, digits, _ . @ : -")
	}
	return nil
}

// ID validates a record identifier.
func ID(field, v string) error {
	if v == "" {
		return model.NewValidationError(field, "is required")
	}
	if _, err := uuid.Parse(v); err != nil {
		return model.NewValidationError(field, "must be a UUID")
	}
	return nil
}

// Content checks that v is well-formed text whose trimmed length, counted in
// characters, is at least min and at most MaxContentLength.
func Content(field, v string, min int) error {
	if err := Text(v); err != nil {
		return err
	}
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	if n == 0 {
		return model.NewValidationError(field, "is required")
	}
	if n < min {
		return model.NewValidationError(field, fmt.Sprintf("must be at least %d characters, got %d", min, n))
	}
	if n > MaxContentLength {
		return model.NewValidationError(field, fmt.Sprintf("exceeds %d characters", MaxContentLength))
	}
	return nil
}

// Text rejects payloads that cannot be tokenized as text: invalid UTF-8, NUL
// bytes, or mostly non-printable characters.
func Text(v string) error {
	if !utf8.ValidString(v) {
		return model.AnalysisError{Message: "content is not valid UTF-8 text"}
	}
	if strings.IndexByte(v, 0) >= 0 {
		return model.AnalysisError{Message: "content contains NUL bytes"}
	}
	var total, control int
	for _, r := range v {
		total++
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			control++
		}
	}
	if total > 0 && control*10 > total {
		return model.AnalysisError{Message: "content looks like a binary payload"}
	}
	return nil
}

// DocumentType validates t. Empty is rejected; use OptionalDocumentType for filters.
func DocumentType(t model.DocumentType) error {
	if !t.Valid() {
		return model.NewValidationError("documentType", fmt.Sprintf("unknown document type %q", t))
	}
	return nil
}

// OptionalDocumentType accepts the empty type (no filter) or any known type.
func OptionalDocumentType(t model.DocumentType) error {
	if t == "" {
		return nil
	}
	return DocumentType(t)
}

// Threshold validates a similarity threshold.
func Threshold(t float64) error {
	if t < 0 || t > 1 {
		return model.NewValidationError("threshold", "must be within [0,1]")
	}
	return nil
}

// Limit validates a result limit. Zero means "use the default".
func Limit(n int) error {
	if n < 0 {
		return model.NewValidationError("limit", "must not be negative")
	}
	return nil
}

// Metadata checks that m can be persisted as a JSON object.
func Metadata(m map[string]interface{}) error {
	if m == nil {
		return nil
	}
	if _, err := json.Marshal(m); err != nil {
		return model.NewValidationError("metadata", "must be a JSON object")
	}
	return nil
}
