// ABOUTME: Public SDK surface for game servers hosted by the orchestrator.
// ABOUTME: Package-level singleton lifecycle around the internal session agent.

package gsdk

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/playsrv/gsdk/internal/agent"
	"github.com/playsrv/gsdk/internal/config"
)

// GameState is the session lifecycle state reported on every heartbeat.
type GameState = agent.GameState

const (
	StateInitializing = agent.StateInitializing
	StateStandingBy   = agent.StateStandingBy
	StateActive       = agent.StateActive
	StateTerminating  = agent.StateTerminating
)

// ConnectedPlayer identifies one player currently connected to the game.
type ConnectedPlayer = agent.ConnectedPlayer

// ConnectionInfo describes the ports and address the orchestrator assigned
// to this server.
type ConnectionInfo = config.ConnectionInfo

// GamePort is one port mapping inside ConnectionInfo.
type GamePort = config.GamePort

// The agent singleton. Creation and destruction are serialized by mu; the
// instance pointer is never touched outside it.
var (
	mu       sync.Mutex
	instance *agent.Agent
)

// Start initializes the SDK and begins heartbeating to the orchestrator.
// Idempotent: returns true immediately if already started. Any setup
// failure is reported by returning false and leaves the SDK uninitialized.
func Start(debugLogs bool) bool {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return true
	}

	src, err := config.Detect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gsdk: %v\n", err)
		return false
	}

	a, err := agent.New(src, agent.Options{Debug: debugLogs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "gsdk: %v\n", err)
		return false
	}

	instance = a
	return true
}

// Stop shuts down the heartbeat loop and releases the SDK. Safe to call
// when never started.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		instance.Stop()
		instance = nil
	}
}

func get() *agent.Agent {
	mu.Lock()
	defer mu.Unlock()
	return instance
}

// ReadyForPlayers tells the orchestrator this server is standing by, then
// blocks until the session is activated or terminated. Reports whether the
// session became active. Returns false when the SDK is not started.
func ReadyForPlayers() bool {
	a := get()
	if a == nil {
		return false
	}
	return a.ReadyForPlayers()
}

// WaitUntilReady blocks until the session is Active or Terminating and
// reports whether it is Active. Unlike ReadyForPlayers it does not request
// the StandingBy state first.
func WaitUntilReady() bool {
	a := get()
	if a == nil {
		return false
	}
	return a.WaitUntilReady()
}

// GetConnectionInfo returns the connection description captured at startup.
func GetConnectionInfo() ConnectionInfo {
	a := get()
	if a == nil {
		return ConnectionInfo{}
	}
	return a.ConnectionInfo()
}

// GetConfigSettings returns a snapshot of the current settings map,
// including session configuration merged in from heartbeat responses.
func GetConfigSettings() map[string]string {
	a := get()
	if a == nil {
		return map[string]string{}
	}
	return a.ConfigSettings()
}

// UpdateConnectedPlayers replaces the player list reported on the next
// heartbeat.
func UpdateConnectedPlayers(players []ConnectedPlayer) {
	if a := get(); a != nil {
		a.SetConnectedPlayers(players)
	}
}

// RegisterShutdownCallback installs the callback invoked when the
// orchestrator terminates the session.
func RegisterShutdownCallback(cb func()) {
	if a := get(); a != nil {
		a.RegisterShutdownCallback(cb)
	}
}

// RegisterHealthCallback installs the callback consulted while encoding
// each heartbeat.
func RegisterHealthCallback(cb func() bool) {
	if a := get(); a != nil {
		a.RegisterHealthCallback(cb)
	}
}

// RegisterMaintenanceCallback installs the callback invoked when the
// orchestrator schedules maintenance.
func RegisterMaintenanceCallback(cb func(time.Time)) {
	if a := get(); a != nil {
		a.RegisterMaintenanceCallback(cb)
	}
}

// LogMessage appends one line to the SDK log file.
func LogMessage(message string) {
	if a := get(); a != nil {
		a.LogMessage(message)
	}
}

// GetLogsDirectory returns the folder the orchestrator designated for logs,
// or "" when unset.
func GetLogsDirectory() string {
	a := get()
	if a == nil {
		return ""
	}
	return a.LogsDirectory()
}

// GetSharedContentDirectory returns the folder shared across servers on the
// same host, or "" when unset.
func GetSharedContentDirectory() string {
	a := get()
	if a == nil {
		return ""
	}
	return a.SharedContentDirectory()
}

// GetInitialPlayers returns the player ids the orchestrator expects to
// connect, delivered at most once per session.
func GetInitialPlayers() []string {
	a := get()
	if a == nil {
		return nil
	}
	return a.InitialPlayers()
}
