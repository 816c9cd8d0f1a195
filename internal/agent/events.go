// ABOUTME: Synchronization primitives for the session agent.
// ABOUTME: A broadcast readiness latch and an auto-reset heartbeat wake signal.

package agent

import "sync"

// readinessGate is a manual-reset latch. Wait blocks until the first Signal,
// after which every current and future waiter is released until Reset.
type readinessGate struct {
	mu sync.Mutex
	ch chan struct{}
}

func newReadinessGate() *readinessGate {
	return &readinessGate{ch: make(chan struct{})}
}

// Wait blocks the caller until the gate has been signaled at least once.
func (g *readinessGate) Wait() {
	g.mu.Lock()
	ch := g.ch
	g.mu.Unlock()
	<-ch
}

// Signal releases all current and future waiters. Idempotent.
func (g *readinessGate) Signal() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.ch:
		// already signaled
	default:
		close(g.ch)
	}
}

// Reset re-arms the gate so subsequent Waits block again.
func (g *readinessGate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	select {
	case <-g.ch:
		g.ch = make(chan struct{})
	default:
	}
}

// wakeSignal is an auto-reset notification: Signal is sticky until one
// receive consumes it, and signaling an already-pending wake is a no-op.
type wakeSignal struct {
	ch chan struct{}
}

func newWakeSignal() *wakeSignal {
	return &wakeSignal{ch: make(chan struct{}, 1)}
}

// Signal requests an early heartbeat. Non-blocking.
func (w *wakeSignal) Signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

// C returns the channel the heartbeat loop selects on. Receiving consumes
// the pending signal.
func (w *wakeSignal) C() <-chan struct{} {
	return w.ch
}
