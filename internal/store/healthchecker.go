package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/health"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
)

const healthOwner = "__health_check__"

// StoreHealthChecker reports whether documents, versions and samples can be
// served. Drivers implementing health.HealthPinger are pinged; others get one
// cheap read per record kind, where ErrNotFound counts as an answer.
type StoreHealthChecker struct {
	store        Store
	status       health.Status
	log          zerolog.Logger
	probeTimeout time.Duration
}

func NewStoreHealthChecker(store Store, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	if probeTimeout <= 0 {
		probeTimeout = 2 * time.Second
	}
	return &StoreHealthChecker{
		store:        store,
		log:          log.With().Str("checker", "store").Logger(),
		probeTimeout: probeTimeout,
	}
}

func (hc *StoreHealthChecker) Name() string    { return "store" }
func (hc *StoreHealthChecker) IsHealthy() bool { return hc.status.Healthy() }

// Probe runs one check and records the result. Only changes are logged.
func (hc *StoreHealthChecker) Probe(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, hc.probeTimeout)
	defer cancel()

	mode, err := hc.check(checkCtx)
	if !hc.status.Set(err == nil) {
		return err
	}
	if err != nil {
		hc.log.Error().Stack().Err(err).Str("mode", mode).Msg("storage unreachable; document and version operations will fail")
	} else {
		hc.log.Info().Str("mode", mode).Msg("storage reachable")
	}
	return err
}

func (hc *StoreHealthChecker) check(ctx context.Context) (string, error) {
	if p, ok := hc.store.(health.HealthPinger); ok {
		return "ping", p.HealthPing(ctx)
	}
	if _, err := hc.store.Documents().Get(ctx, healthOwner); err != nil && !IsNotFound(err) {
		return "read", errors.Wrap(err, "documents")
	}
	if _, err := hc.store.Versions().Latest(ctx, healthOwner, model.CategoryWritingStyle); err != nil && !IsNotFound(err) {
		return "read", errors.Wrap(err, "versions")
	}
	if _, err := hc.store.Samples().List(ctx, healthOwner); err != nil {
		return "read", errors.Wrap(err, "samples")
	}
	return "read", nil
}

// Start probes every interval until ctx ends.
func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	health.Poll(ctx, interval, hc.Probe)
}
