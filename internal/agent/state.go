// ABOUTME: Game state machine and connected-player tracking.
// ABOUTME: Distinct transitions wake the heartbeat loop early.

package agent

// GameState is the lifecycle state reported to the orchestrator on every
// heartbeat. The agent owns the current value; it changes only through
// Transition.
type GameState string

const (
	StateInitializing GameState = "Initializing"
	StateStandingBy   GameState = "StandingBy"
	StateActive       GameState = "Active"
	StateTerminating  GameState = "Terminating"
)

// ConnectedPlayer identifies one player currently connected to the host
// game. The list is replaced wholesale on every update, never diffed.
type ConnectedPlayer struct {
	PlayerID string `json:"PlayerId"`
}

// State returns the current game state.
func (a *Agent) State() GameState {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	return a.state
}

// Transition moves the state machine to next. Equal states are a no-op and
// fire no signals. A distinct transition wakes the heartbeat loop so the
// orchestrator observes it within one wake interval, and transitions into
// Active or Terminating release everyone blocked on the readiness gate.
func (a *Agent) Transition(next GameState) {
	a.stateMu.Lock()
	// No transition exists back out of Terminating.
	if a.state == next || a.state == StateTerminating {
		a.stateMu.Unlock()
		return
	}
	a.state = next
	a.stateMu.Unlock()

	if next == StateActive || next == StateTerminating {
		a.ready.Signal()
	}
	a.wake.Signal()
}

// SetConnectedPlayers replaces the connected-player list reported on the
// next heartbeat. No state-change signal fires.
func (a *Agent) SetConnectedPlayers(players []ConnectedPlayer) {
	copied := make([]ConnectedPlayer, len(players))
	copy(copied, players)

	a.playersMu.Lock()
	a.players = copied
	a.playersMu.Unlock()
}

// ConnectedPlayers returns a copy of the current player list.
func (a *Agent) ConnectedPlayers() []ConnectedPlayer {
	a.playersMu.Lock()
	defer a.playersMu.Unlock()

	copied := make([]ConnectedPlayer, len(a.players))
	copy(copied, a.players)
	return copied
}
