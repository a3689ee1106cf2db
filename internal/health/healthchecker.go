// Package health aggregates component checkers into one service health flag.
package health

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthPinger is implemented by stores and providers that offer a cheaper
// liveness check than a real read or embed. nil means healthy.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}

// HealthChecker is implemented by component-level checkers (store, embedder).
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Status is a component's cached health. Set reports whether the value
// changed so callers log transitions instead of every probe.
type Status struct {
	v   atomic.Int32
	set atomic.Bool
}

// Healthy returns the last recorded value; false before the first Set.
func (s *Status) Healthy() bool { return s.v.Load() == 1 }

// Set records ok and reports whether it differs from the previous value.
// The first Set always counts as a change.
func (s *Status) Set(ok bool) bool {
	var n int32
	if ok {
		n = 1
	}
	old := s.v.Swap(n)
	first := !s.set.Swap(true)
	return first || old != n
}

// Poll calls probe immediately and then every interval until ctx ends.
func Poll(ctx context.Context, interval time.Duration, probe func(context.Context) error) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	_ = probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = probe(ctx)
		}
	}
}

// ServiceHealthChecker aggregates component checkers into a single service health flag.
type ServiceHealthChecker struct {
	healthy atomic.Int32
	deps    []HealthChecker
	log     zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	h := &ServiceHealthChecker{deps: deps, log: log}
	h.healthy.Store(0)
	return h
}

// IsHealthy returns cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() == 1 }

// Components returns the cached health of every dependency by name.
func (h *ServiceHealthChecker) Components() map[string]bool {
	out := make(map[string]bool, len(h.deps))
	for _, c := range h.deps {
		out[c.Name()] = c.IsHealthy()
	}
	return out
}

// Start re-evaluates the dependencies every interval until ctx ends. Only
// transitions are logged; a DOWN entry names the failing components.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasUp := false
	for {
		down := h.down()
		up := len(down) == 0
		if up {
			h.healthy.Store(1)
		} else {
			h.healthy.Store(0)
		}
		switch {
		case up && !wasUp:
			h.log.Info().Int("components", len(h.deps)).Msg("service health: UP")
		case !up && wasUp:
			h.log.Error().Strs("down", down).Msg("service health: DOWN")
		}
		wasUp = up

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *ServiceHealthChecker) down() []string {
	var names []string
	for _, c := range h.deps {
		if !c.IsHealthy() {
			names = append(names, c.Name())
		}
	}
	return names
}

// WaitUntilHealthy blocks until svc reports healthy, the timeout expires or ctx ends.
func WaitUntilHealthy(ctx context.Context, svc *ServiceHealthChecker, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svc.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("dependencies not healthy within %s", timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
