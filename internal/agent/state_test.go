// ABOUTME: Tests for the game state machine and player tracking.
// ABOUTME: Covers wake signaling, no-op transitions, and the Terminating wall.

package agent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func drainWake(a *Agent) {
	select {
	case <-a.wake.C():
	default:
	}
}

func wakePending(a *Agent) bool {
	select {
	case <-a.wake.C():
		return true
	default:
		return false
	}
}

func TestTransition_SetsStateAndWakes(t *testing.T) {
	a := newTestAgent(t)
	drainWake(a)

	a.Transition(StateStandingBy)

	assert.Equal(t, StateStandingBy, a.State())
	assert.True(t, wakePending(a), "distinct transition should signal an early heartbeat")
}

func TestTransition_NoOpDoesNotWake(t *testing.T) {
	a := newTestAgent(t)
	a.Transition(StateStandingBy)
	drainWake(a)

	a.Transition(StateStandingBy)

	assert.Equal(t, StateStandingBy, a.State())
	assert.False(t, wakePending(a), "same-state transition must not signal")
}

func TestTransition_ObservedImmediatelyByReaders(t *testing.T) {
	a := newTestAgent(t)

	for _, s := range []GameState{StateStandingBy, StateActive, StateTerminating} {
		a.Transition(s)
		assert.Equal(t, s, a.State())
	}
}

func TestTransition_NoWayBackFromTerminating(t *testing.T) {
	a := newTestAgent(t)
	a.Transition(StateTerminating)
	drainWake(a)

	a.Transition(StateStandingBy)

	assert.Equal(t, StateTerminating, a.State())
	assert.False(t, wakePending(a))
}

func TestSetConnectedPlayers_WholesaleReplace(t *testing.T) {
	a := newTestAgent(t)

	a.SetConnectedPlayers([]ConnectedPlayer{{PlayerID: "p1"}, {PlayerID: "p2"}})
	assert.Equal(t, []ConnectedPlayer{{PlayerID: "p1"}, {PlayerID: "p2"}}, a.ConnectedPlayers())

	a.SetConnectedPlayers([]ConnectedPlayer{{PlayerID: "p3"}})
	assert.Equal(t, []ConnectedPlayer{{PlayerID: "p3"}}, a.ConnectedPlayers())

	a.SetConnectedPlayers(nil)
	assert.Empty(t, a.ConnectedPlayers())
}

func TestSetConnectedPlayers_DoesNotWake(t *testing.T) {
	a := newTestAgent(t)
	drainWake(a)

	a.SetConnectedPlayers([]ConnectedPlayer{{PlayerID: "p1"}})

	assert.False(t, wakePending(a))
}

func TestSetConnectedPlayers_CopiesInput(t *testing.T) {
	a := newTestAgent(t)

	players := []ConnectedPlayer{{PlayerID: "p1"}}
	a.SetConnectedPlayers(players)
	players[0].PlayerID = "mutated"

	assert.Equal(t, "p1", a.ConnectedPlayers()[0].PlayerID)
}

func TestTransition_ConcurrentCallers(t *testing.T) {
	a := newTestAgent(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Transition(StateStandingBy)
			a.State()
		}()
	}
	wg.Wait()

	assert.Equal(t, StateStandingBy, a.State())
}
