// ABOUTME: Tests for the readiness latch and the heartbeat wake signal.
// ABOUTME: Verifies broadcast, idempotence, reset, and auto-reset semantics.

package agent

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReadinessGate_SignalReleasesAllWaiters(t *testing.T) {
	g := newReadinessGate()

	var wg sync.WaitGroup
	released := make(chan struct{}, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Wait()
			released <- struct{}{}
		}()
	}

	// No waiter should get through before the signal.
	select {
	case <-released:
		t.Fatal("waiter released before Signal")
	case <-time.After(50 * time.Millisecond):
	}

	g.Signal()
	wg.Wait()
	assert.Len(t, released, 8)
}

func TestReadinessGate_WaitAfterSignalReturnsImmediately(t *testing.T) {
	g := newReadinessGate()
	g.Signal()
	g.Signal() // idempotent

	done := make(chan struct{})
	go func() {
		g.Wait()
		g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked after Signal")
	}
}

func TestReadinessGate_ResetRearms(t *testing.T) {
	g := newReadinessGate()
	g.Signal()
	g.Reset()

	released := make(chan struct{})
	go func() {
		g.Wait()
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("waiter released after Reset without a new Signal")
	case <-time.After(50 * time.Millisecond):
	}

	g.Signal()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("waiter not released after re-Signal")
	}
}

func TestWakeSignal_AutoReset(t *testing.T) {
	w := newWakeSignal()

	w.Signal()
	w.Signal() // coalesces with the pending signal

	select {
	case <-w.C():
	default:
		t.Fatal("expected a pending wake")
	}

	// Consumed: no second signal should be pending.
	select {
	case <-w.C():
		t.Fatal("wake signal was not consumed by the first receive")
	default:
	}
}

func TestWakeSignal_NonBlocking(t *testing.T) {
	w := newWakeSignal()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			w.Signal()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Signal blocked with no receiver")
	}
}
