// Package throttle implements per-host politeness gating for fetch
// workers. Each host key gets its own concurrency slots and minimum
// fetch interval; unrelated hosts never wait on each other.
package throttle

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Default politeness settings.
const (
	DefaultPerHostConcurrency = 1
	DefaultPerHostInterval    = 500 * time.Millisecond
)

// hostGate holds the throttling state for a single host key. The slots
// channel bounds in-flight fetches; the limiter enforces the minimum
// interval between fetch starts. A fresh gate's limiter has a full burst
// token, so the first request to a host is never delayed.
type hostGate struct {
	slots   chan struct{}
	limiter *rate.Limiter
}

// HostThrottle gates fetches per host key. The registry lock only guards
// gate creation; waiting happens on the per-host gate, so contention is
// local to a host.
type HostThrottle struct {
	mu          sync.Mutex
	gates       map[string]*hostGate
	concurrency int
	interval    time.Duration
}

// New creates a host throttle allowing concurrency in-flight fetches per
// host with at least interval between fetch starts. Non-positive values
// fall back to the defaults.
func New(concurrency int, interval time.Duration) *HostThrottle {
	if concurrency <= 0 {
		concurrency = DefaultPerHostConcurrency
	}
	if interval <= 0 {
		interval = DefaultPerHostInterval
	}

	return &HostThrottle{
		gates:       make(map[string]*hostGate),
		concurrency: concurrency,
		interval:    interval,
	}
}

// Acquire blocks until the host has a free concurrency slot and its
// minimum interval has elapsed since the previous fetch began, then
// returns a release function freeing the slot. Release must be called
// exactly once, promptly after the fetch response completes. A cancelled
// context aborts the wait.
func (t *HostThrottle) Acquire(ctx context.Context, hostKey string) (func(), error) {
	gate := t.gate(hostKey)

	select {
	case gate.slots <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := gate.limiter.Wait(ctx); err != nil {
		<-gate.slots
		return nil, err
	}

	var once sync.Once
	release := func() {
		once.Do(func() { <-gate.slots })
	}

	return release, nil
}

// gate returns the gate for hostKey, creating it on first use.
func (t *HostThrottle) gate(hostKey string) *hostGate {
	t.mu.Lock()
	defer t.mu.Unlock()

	if g, ok := t.gates[hostKey]; ok {
		return g
	}

	g := &hostGate{
		slots:   make(chan struct{}, t.concurrency),
		limiter: rate.NewLimiter(rate.Every(t.interval), 1),
	}
	t.gates[hostKey] = g

	return g
}
