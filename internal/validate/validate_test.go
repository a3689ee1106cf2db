package validate

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

func TestContent(t *testing.T) {
	forty := strings.Repeat("a", 40)
	fifty := strings.Repeat("b", 50)

	tests := []struct {
		name      string
		v         string
		min       int
		wantValid bool
		wantAnaly bool
	}{
		{"empty", "", MinAnalysisLength, true, false},
		{"blank", "   \n\t", MinAnalysisLength, true, false},
		{"below analysis min", "too short", MinAnalysisLength, true, false},
		{"analysis min", "ten chars!", MinAnalysisLength, false, false},
		{"forty below persisted min", forty, MinPersistedLength, true, false},
		{"fifty ok", fifty, MinPersistedLength, false, false},
		{"padding not counted", "  " + forty + strings.Repeat(" ", 20), MinPersistedLength, true, false},
		{"multibyte counts runes", strings.Repeat("é", 10), MinAnalysisLength, false, false},
		{"invalid utf8", "\xff\xfe" + fifty, MinPersistedLength, false, true},
		{"nul", fifty + "\x00", MinPersistedLength, false, true},
		{"binary", strings.Repeat("\x01\x02", 40), MinAnalysisLength, false, true},
		{"too long", strings.Repeat("x", MaxContentLength+1), MinAnalysisLength, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Content("content", tt.v, tt.min)
			assert.Equal(t, tt.wantValid, model.IsValidationError(err), "validation error: %v", err)
			assert.Equal(t, tt.wantAnaly, model.IsAnalysisError(err), "analysis error: %v", err)
			if !tt.wantValid && !tt.wantAnaly {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOwnerID(t *testing.T) {
	assert.NoError(t, OwnerID("user_42"))
	assert.NoError(t, OwnerID("auth0:abc-123"))
	assert.Error(t, OwnerID(""))
	assert.Error(t, OwnerID("has space"))
	assert.Error(t, OwnerID(strings.Repeat("a", 129)))
}

func TestIDAndTypes(t *testing.T) {
	assert.NoError(t, ID("id", uuid.NewString()))
	assert.True(t, model.IsValidationError(ID("id", "nope")))
	assert.True(t, model.IsValidationError(ID("id", "")))

	assert.NoError(t, DocumentType(model.DocumentTypeTrend))
	assert.Error(t, DocumentType(""))
	assert.Error(t, DocumentType("blog"))
	assert.NoError(t, OptionalDocumentType(""))
	assert.Error(t, OptionalDocumentType("blog"))
}

func TestSearchParams(t *testing.T) {
	assert.NoError(t, Threshold(0))
	assert.NoError(t, Threshold(1))
	assert.Error(t, Threshold(1.01))
	assert.Error(t, Threshold(-0.1))
	assert.NoError(t, Limit(0))
	assert.Error(t, Limit(-1))
}

func TestMetadata(t *testing.T) {
	assert.NoError(t, Metadata(nil))
	assert.NoError(t, Metadata(map[string]interface{}{"platform": "linkedin", "n": 3}))
	assert.Error(t, Metadata(map[string]interface{}{"bad": make(chan int)}))
}
