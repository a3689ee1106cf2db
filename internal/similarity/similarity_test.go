package similarity

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{1, 0}, []float32{-1, 0}), "opposite vectors clamp to 0")
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 1}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(math.NaN()))
	assert.Equal(t, 1.0, Clamp(1.0000001))
	assert.Equal(t, 0.25, Clamp(0.25))
}

func doc(id, owner string, typ model.DocumentType, vec []float32, created time.Time) *model.Document {
	return &model.Document{ID: id, OwnerID: owner, DocumentType: typ, Embedding: vec, CreatedAt: created}
}

func TestRank_ThresholdOrderingAndTieBreak(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []*model.Document{
		doc("old-exact", "u1", model.DocumentTypeContent, []float32{1, 0}, base),
		doc("new-exact", "u1", model.DocumentTypeContent, []float32{2, 0}, base.Add(time.Hour)),
		doc("close", "u1", model.DocumentTypeContent, []float32{1, 0.3}, base),
		doc("far", "u1", model.DocumentTypeContent, []float32{0, 1}, base),
		doc("other-owner", "u2", model.DocumentTypeContent, []float32{1, 0}, base),
		doc("other-type", "u1", model.DocumentTypeTrend, []float32{1, 0}, base),
	}

	got := Rank(docs, model.VectorQuery{
		Vector:       []float32{1, 0},
		OwnerID:      "u1",
		DocumentType: model.DocumentTypeContent,
		Limit:        10,
		Threshold:    0.5,
	})
	require.Len(t, got, 3)
	assert.Equal(t, "new-exact", got[0].Document.ID, "equal similarity prefers the most recent document")
	assert.Equal(t, "old-exact", got[1].Document.ID)
	assert.Equal(t, "close", got[2].Document.ID)
	for i, r := range got {
		assert.GreaterOrEqual(t, r.Similarity, 0.5)
		assert.LessOrEqual(t, r.Similarity, 1.0)
		if i > 0 {
			assert.LessOrEqual(t, r.Similarity, got[i-1].Similarity)
		}
	}
}

func TestRank_LimitAndExclude(t *testing.T) {
	base := time.Now()
	docs := []*model.Document{
		doc("a", "u", model.DocumentTypeContent, []float32{1, 0}, base),
		doc("b", "u", model.DocumentTypeContent, []float32{1, 0.1}, base),
		doc("c", "u", model.DocumentTypeContent, []float32{1, 0.2}, base),
	}
	got := Rank(docs, model.VectorQuery{Vector: []float32{1, 0}, ExcludeID: "a", Limit: 1})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Document.ID)
}
