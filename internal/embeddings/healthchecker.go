package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/health"
)

// ProviderHealthChecker reports whether the provider can still produce
// vectors the document store accepts. A provider implementing
// health.HealthPinger is pinged; otherwise a short text is embedded and its
// length compared with the pinned dimension, when one is set.
type ProviderHealthChecker struct {
	provider     Provider
	dimension    int
	status       health.Status
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewProviderHealthChecker(p Provider, log zerolog.Logger, probeTimeout time.Duration) *ProviderHealthChecker {
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	return &ProviderHealthChecker{
		provider:     p,
		log:          log.With().Str("checker", "embedder").Logger(),
		probeTimeout: probeTimeout,
	}
}

// WithDimension makes embed probes fail when the vector length differs from n.
// n <= 0 disables the check.
func (c *ProviderHealthChecker) WithDimension(n int) *ProviderHealthChecker {
	c.dimension = n
	return c
}

func (c *ProviderHealthChecker) Name() string    { return "embedder" }
func (c *ProviderHealthChecker) IsHealthy() bool { return c.status.Healthy() }

// Probe runs one check and records the result. Only changes are logged.
func (c *ProviderHealthChecker) Probe(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	err := c.check(checkCtx)
	if !c.status.Set(err == nil) {
		return err
	}
	if err != nil {
		c.log.Error().Stack().Err(err).Int("dimension", c.dimension).Msg("embedding provider unavailable; store, update and search will fail")
	} else {
		c.log.Info().Int("dimension", c.dimension).Msg("embedding provider available")
	}
	return err
}

func (c *ProviderHealthChecker) check(ctx context.Context) error {
	if p, ok := c.provider.(health.HealthPinger); ok {
		return p.HealthPing(ctx)
	}
	vec, err := c.provider.Embed(ctx, "health-check")
	switch {
	case err != nil:
		return err
	case len(vec) == 0:
		return errEmptyVector
	case c.dimension > 0 && len(vec) != c.dimension:
		return fmt.Errorf("provider returned %d dimensions, store is pinned to %d", len(vec), c.dimension)
	}
	return nil
}

// Start probes every interval until ctx ends.
func (c *ProviderHealthChecker) Start(ctx context.Context, interval time.Duration) {
	health.Poll(ctx, interval, c.Probe)
}
