// ABOUTME: Single-slot host callbacks: shutdown, health, and maintenance.
// ABOUTME: Registration is last-writer-wins; shutdown runs off the heartbeat goroutine.

package agent

import (
	"sync"
	"time"
)

// callbackDispatcher holds at most one callback per slot. Hosts are expected
// to register before starting to rely on the behavior that reads them.
type callbackDispatcher struct {
	mu          sync.Mutex
	shutdown    func()
	health      func() bool
	maintenance func(time.Time)
}

func (d *callbackDispatcher) setShutdown(cb func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shutdown = cb
}

func (d *callbackDispatcher) setHealth(cb func() bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.health = cb
}

func (d *callbackDispatcher) setMaintenance(cb func(time.Time)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maintenance = cb
}

func (d *callbackDispatcher) getShutdown() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shutdown
}

func (d *callbackDispatcher) getHealth() func() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.health
}

func (d *callbackDispatcher) getMaintenance() func(time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maintenance
}

// RegisterShutdownCallback installs the niladic callback invoked when the
// orchestrator terminates the session. It runs on its own goroutine so host
// shutdown logic never blocks the heartbeat loop.
func (a *Agent) RegisterShutdownCallback(cb func()) {
	a.callbacks.setShutdown(cb)
}

// RegisterHealthCallback installs the callback consulted just-in-time while
// encoding each heartbeat. Absent a callback the last reported health is
// reused (healthy by default).
func (a *Agent) RegisterHealthCallback(cb func() bool) {
	a.callbacks.setHealth(cb)
}

// RegisterMaintenanceCallback installs the callback invoked when the
// orchestrator schedules maintenance. Repeat notices with an unchanged
// timestamp are suppressed.
func (a *Agent) RegisterMaintenanceCallback(cb func(time.Time)) {
	a.callbacks.setMaintenance(cb)
}

// dispatchShutdown runs the shutdown callback on a fresh goroutine. When the
// callback returns the heartbeat loop is stopped as a safety net even if the
// host never calls Stop. The goroutine is owned: Stop waits on its done
// channel with a bounded timeout.
func (a *Agent) dispatchShutdown() {
	done := make(chan struct{})

	a.shutdownMu.Lock()
	a.shutdownDone = done
	a.shutdownMu.Unlock()

	go func() {
		defer close(done)
		if cb := a.callbacks.getShutdown(); cb != nil {
			cb()
		}
		a.stopHeartbeat()
	}()
}
