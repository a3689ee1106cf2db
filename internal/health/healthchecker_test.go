package health

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeChecker struct {
	name    string
	healthy atomic.Int32
}

func (f *fakeChecker) Name() string                               { return f.name }
func (f *fakeChecker) IsHealthy() bool                            { return f.healthy.Load() == 1 }
func (f *fakeChecker) Start(ctx context.Context, _ time.Duration) { /* no-op */ }

func TestServiceHealthChecker_Transitions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &fakeChecker{name: "a"}
	b := &fakeChecker{name: "b"}
	a.healthy.Store(1)
	b.healthy.Store(1)

	svc := NewServiceHealthChecker(zerolog.Nop(), a, b)
	go svc.Start(ctx, 10*time.Millisecond)

	waitTrue(t, func() bool { return svc.IsHealthy() })

	b.healthy.Store(0)
	waitTrue(t, func() bool { return !svc.IsHealthy() })
	if comps := svc.Components(); comps["a"] != true || comps["b"] != false {
		t.Fatalf("unexpected components: %v", comps)
	}

	b.healthy.Store(1)
	waitTrue(t, func() bool { return svc.IsHealthy() })
}

func TestWaitUntilHealthy_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	down := &fakeChecker{name: "down"}
	svc := NewServiceHealthChecker(zerolog.Nop(), down)
	go svc.Start(ctx, 10*time.Millisecond)

	if err := WaitUntilHealthy(ctx, svc, 100*time.Millisecond); err == nil {
		t.Fatalf("expected timeout error")
	}

	down.healthy.Store(1)
	if err := WaitUntilHealthy(ctx, svc, time.Second); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
}

func waitTrue(t *testing.T, pred func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pred() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met before timeout")
}

func TestStatus_SetReportsChanges(t *testing.T) {
	var s Status
	if s.Healthy() {
		t.Fatalf("zero status must be unhealthy")
	}
	if !s.Set(false) {
		t.Fatalf("first Set is a change")
	}
	if s.Set(false) {
		t.Fatalf("repeated value is not a change")
	}
	if !s.Set(true) || !s.Healthy() {
		t.Fatalf("expected change to healthy")
	}
}

func TestPoll_ProbesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		Poll(ctx, 5*time.Millisecond, func(context.Context) error {
			calls.Add(1)
			return nil
		})
		close(done)
	}()

	waitTrue(t, func() bool { return calls.Load() >= 3 })
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Poll did not return after cancel")
	}
}
