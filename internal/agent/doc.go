// Package agent implements the in-process session agent that reports
// lifecycle state to the orchestrator and reacts to its directives.
//
// # Overview
//
// One Agent exists per started SDK. It owns a single background heartbeat
// goroutine that PATCHes the current game state, health, and connected
// players to the orchestrator once per second (or sooner after a state
// transition), then applies whatever the reply carries: session config
// deltas, the one-time initial player list, maintenance notices, and
// operations (Continue, Active, Terminate).
//
// # State Machine
//
// GameState moves Initializing → StandingBy (host calls ReadyForPlayers) →
// Active or Terminating (orchestrator operations). There is no way back out
// of Terminating. Equal-state transitions are no-ops and fire no signals.
//
// # Synchronization
//
// Two primitives coordinate the heartbeat goroutine with host threads:
//
//   - readinessGate: a manual-reset broadcast latch. ReadyForPlayers and
//     WaitUntilReady block on it; transitions into Active or Terminating
//     release every current and future waiter.
//   - wakeSignal: an auto-reset notify with a one-slot buffer. Distinct
//     state transitions signal it so the loop heartbeats early instead of
//     waiting out the interval.
//
// Settings, game state, and the player list each have their own mutex;
// unrelated operations never serialize on a shared lock.
//
// # Failure Policy
//
// Nothing in the heartbeat cycle terminates the process. Malformed replies,
// unknown operations, and non-2xx statuses are logged and that cycle's
// effects dropped; the loop continues on its next tick.
//
// # Callbacks
//
// Hosts may register one shutdown, one health, and one maintenance
// callback. Health runs synchronously while encoding a request; maintenance
// runs synchronously while applying a reply; shutdown runs on its own
// goroutine so host teardown never blocks the loop. Stop joins that
// goroutine with a bounded timeout.
package agent
