package embeddings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	vec []float32
	err error
}

func (s stubProvider) Embed(context.Context, string) ([]float32, error) { return s.vec, s.err }

type pingProvider struct {
	stubProvider
	pingErr error
	pinged  bool
}

func (p *pingProvider) HealthPing(context.Context) error {
	p.pinged = true
	return p.pingErr
}

func TestProviderHealthChecker_EmbedFallback(t *testing.T) {
	hc := NewProviderHealthChecker(stubProvider{vec: []float32{1}}, zerolog.Nop(), time.Second)
	assert.False(t, hc.IsHealthy())
	require.NoError(t, hc.Probe(context.Background()))
	assert.True(t, hc.IsHealthy())

	hc = NewProviderHealthChecker(stubProvider{}, zerolog.Nop(), time.Second)
	assert.Error(t, hc.Probe(context.Background()), "empty vector is unhealthy")
	assert.False(t, hc.IsHealthy())

	hc = NewProviderHealthChecker(stubProvider{err: errors.New("down")}, zerolog.Nop(), time.Second)
	assert.Error(t, hc.Probe(context.Background()))
}

func TestProviderHealthChecker_PrefersHealthPing(t *testing.T) {
	p := &pingProvider{stubProvider: stubProvider{err: errors.New("embed should not be called")}}
	hc := NewProviderHealthChecker(p, zerolog.Nop(), 0)
	require.NoError(t, hc.Probe(context.Background()))
	assert.True(t, p.pinged)
	assert.True(t, hc.IsHealthy())

	p.pingErr = errors.New("model missing")
	assert.Error(t, hc.Probe(context.Background()))
	assert.False(t, hc.IsHealthy())
}

func TestProviderHealthChecker_DimensionMismatch(t *testing.T) {
	hc := NewProviderHealthChecker(stubProvider{vec: []float32{1, 2, 3}}, zerolog.Nop(), time.Second).WithDimension(4)
	err := hc.Probe(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pinned to 4")
	assert.False(t, hc.IsHealthy())

	hc.WithDimension(3)
	require.NoError(t, hc.Probe(context.Background()))
	assert.True(t, hc.IsHealthy())
}
