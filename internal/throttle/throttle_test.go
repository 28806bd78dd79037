package throttle_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/jobtechs/internal/throttle"
)

const testHost = "https://example.com"

func TestAcquire_NoOverlapWithSingleSlot(t *testing.T) {
	t.Parallel()

	th := throttle.New(1, time.Millisecond)
	ctx := context.Background()

	var inFlight, maxInFlight int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := th.Acquire(ctx, testHost)
			if err != nil {
				t.Error(err)
				return
			}

			cur := atomic.AddInt32(&inFlight, 1)
			for {
				prev := atomic.LoadInt32(&maxInFlight)
				if cur <= prev || atomic.CompareAndSwapInt32(&maxInFlight, prev, cur) {
					break
				}
			}

			time.Sleep(2 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			release()
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight),
		"no two fetches to one host may overlap with a single slot")
}

func TestAcquire_FirstRequestNotDelayed(t *testing.T) {
	t.Parallel()

	th := throttle.New(1, time.Second)

	start := time.Now()
	release, err := th.Acquire(context.Background(), testHost)
	require.NoError(t, err)
	release()

	assert.Less(t, time.Since(start), 100*time.Millisecond,
		"a host with no prior traffic gets no artificial delay")
}

func TestAcquire_EnforcesInterval(t *testing.T) {
	t.Parallel()

	const interval = 100 * time.Millisecond

	th := throttle.New(2, interval)
	ctx := context.Background()

	release1, err := th.Acquire(ctx, testHost)
	require.NoError(t, err)
	release1()

	start := time.Now()
	release2, err := th.Acquire(ctx, testHost)
	require.NoError(t, err)
	release2()

	assert.GreaterOrEqual(t, time.Since(start), interval/2,
		"second fetch must wait for the per-host interval")
}

func TestAcquire_HostsDoNotSerializeEachOther(t *testing.T) {
	t.Parallel()

	th := throttle.New(1, time.Minute)
	ctx := context.Background()

	// First acquire on host A consumes its burst token.
	releaseA, err := th.Acquire(ctx, "https://a.example.com")
	require.NoError(t, err)
	defer releaseA()

	// Host B must still be admitted immediately.
	done := make(chan struct{})
	go func() {
		defer close(done)
		releaseB, acquireErr := th.Acquire(ctx, "https://b.example.com")
		if acquireErr != nil {
			t.Error(acquireErr)
			return
		}
		releaseB()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("acquire on an unrelated host blocked")
	}
}

func TestAcquire_CancelledContext(t *testing.T) {
	t.Parallel()

	th := throttle.New(1, time.Minute)

	// Hold the only slot.
	release, err := th.Acquire(context.Background(), testHost)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, acquireErr := th.Acquire(ctx, testHost)
		errCh <- acquireErr
	}()

	cancel()

	select {
	case acquireErr := <-errCh:
		require.ErrorIs(t, acquireErr, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled acquire did not return")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	t.Parallel()

	th := throttle.New(1, time.Millisecond)
	ctx := context.Background()

	release, err := th.Acquire(ctx, testHost)
	require.NoError(t, err)

	release()
	release() // second call must be a no-op, not free a phantom slot

	release2, err := th.Acquire(ctx, testHost)
	require.NoError(t, err)
	release2()
}
