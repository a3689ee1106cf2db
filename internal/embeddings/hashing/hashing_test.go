package hashing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/similarity"
)

func TestEmbed_DeterministicAndNormalized(t *testing.T) {
	p := New(64)
	a, err := p.Embed(context.Background(), "Scaling engineering teams with clear ownership")
	require.NoError(t, err)
	b, err := p.Embed(context.Background(), "Scaling engineering teams with clear ownership")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestEmbed_SharedVocabularyScoresHigher(t *testing.T) {
	p := New(256)
	ctx := context.Background()
	q, _ := p.Embed(ctx, "kubernetes deployment pipeline")
	near, _ := p.Embed(ctx, "our kubernetes deployment pipeline runs nightly")
	far, _ := p.Embed(ctx, "banana bread recipe with walnuts")

	assert.Greater(t, similarity.Cosine(q, near), similarity.Cosine(q, far))
}

func TestEmbed_Errors(t *testing.T) {
	p := New(0)
	assert.Equal(t, DefaultDimension, p.Dimension())

	_, err := p.Embed(context.Background(), "")
	assert.Error(t, err)

	vec, err := p.Embed(context.Background(), "!!!")
	require.NoError(t, err, "punctuation-only text hashes as a single feature")
	assert.Len(t, vec, DefaultDimension)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Embed(ctx, "hello")
	assert.Error(t, err)
}
