// ABOUTME: Session agent composition root: init, teardown, and state access.
// ABOUTME: Owns the settings map, heartbeat loop, and readiness gate.

package agent

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/playsrv/gsdk/internal/config"
	"github.com/playsrv/gsdk/internal/logging"
	"github.com/playsrv/gsdk/internal/transport"
)

// shutdownJoinTimeout bounds how long Stop waits for an in-flight shutdown
// callback before tearing down anyway.
const shutdownJoinTimeout = 5 * time.Second

// Options tunes agent construction.
type Options struct {
	// Debug enables debug-level logging, including per-cycle heartbeat traces.
	Debug bool

	// HeartbeatTimeout is the client-side deadline for one heartbeat round
	// trip. Zero means no deadline, matching the orchestrator contract's
	// default.
	HeartbeatTimeout time.Duration
}

// Agent is the in-process session agent. One instance exists per started
// SDK; it owns the heartbeat goroutine and all shared state.
type Agent struct {
	log    *logging.Log
	logger *slog.Logger
	client *transport.Client

	heartbeatURL string
	connInfo     config.ConnectionInfo

	configMu       sync.Mutex
	settings       map[string]string
	initialPlayers []string

	stateMu sync.Mutex
	state   GameState

	playersMu sync.Mutex
	players   []ConnectedPlayer

	callbacks callbackDispatcher

	// healthy and cachedMaintenance are touched only by the heartbeat
	// goroutine after construction.
	healthy           bool
	cachedMaintenance time.Time

	ready *readinessGate
	wake  *wakeSignal

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	shutdownMu   sync.Mutex
	shutdownDone chan struct{}
}

// New builds an agent from the given configuration source and starts the
// heartbeat loop unless the source disables it. Any failure here is a fatal
// startup error and leaves nothing running.
func New(src config.Source, opts Options) (*Agent, error) {
	settings := config.Settings(src)
	if err := config.Validate(settings); err != nil {
		return nil, err
	}

	var lg *logging.Log
	if src.ShouldLog() {
		opened, err := logging.Open(settings[config.LogFolderKey], opts.Debug)
		if err != nil {
			return nil, fmt.Errorf("starting log: %w", err)
		}
		lg = opened
	} else {
		lg = logging.Discard(opts.Debug)
	}

	a := &Agent{
		log:      lg,
		logger:   lg.Logger(),
		client:   transport.New(opts.HeartbeatTimeout),
		connInfo: src.ConnectionInfo(),
		settings: settings,
		state:    StateInitializing,
		healthy:  true,
		ready:    newReadinessGate(),
		wake:     newWakeSignal(),
		stop:     make(chan struct{}),
	}

	endpoint := settings[config.HeartbeatEndpointKey]
	serverID := settings[config.ServerIDKey]
	a.heartbeatURL = fmt.Sprintf("http://%s/v1/sessionHosts/%s", endpoint, serverID)

	a.logger.Info("session agent starting",
		"endpoint", endpoint,
		"server_id", serverID,
	)
	for k, v := range settings {
		a.logger.Debug("config setting", "key", k, "value", v)
	}

	if src.ShouldHeartbeat() {
		a.wg.Add(1)
		go a.heartbeatLoop()
	}

	return a, nil
}

// stopHeartbeat asks the loop to exit and wakes it so shutdown is observed
// promptly rather than waiting out the remaining interval.
func (a *Agent) stopHeartbeat() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
	a.wake.Signal()
}

// Stop shuts the agent down: the heartbeat goroutine is joined, an in-flight
// shutdown callback is waited on (bounded), and the log file is closed.
func (a *Agent) Stop() {
	a.stopHeartbeat()
	a.wg.Wait()

	a.shutdownMu.Lock()
	done := a.shutdownDone
	a.shutdownMu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(shutdownJoinTimeout):
			a.logger.Warn("shutdown callback did not finish before teardown")
		}
	}

	a.log.Close()
}

// ReadyForPlayers announces the server is standing by and blocks until the
// orchestrator activates the session or terminates it. Reports whether the
// session became active.
func (a *Agent) ReadyForPlayers() bool {
	if a.State() != StateActive {
		a.Transition(StateStandingBy)
		a.ready.Wait()
	}
	return a.State() == StateActive
}

// WaitUntilReady blocks until the session is Active or Terminating and
// reports whether it is Active. Idempotent for any number of callers.
func (a *Agent) WaitUntilReady() bool {
	if a.State() == StateActive {
		return true
	}
	a.ready.Wait()
	return a.State() == StateActive
}

// ConfigSettings returns a snapshot copy of the settings map, never a live
// reference.
func (a *Agent) ConfigSettings() map[string]string {
	a.configMu.Lock()
	defer a.configMu.Unlock()

	copied := make(map[string]string, len(a.settings))
	for k, v := range a.settings {
		copied[k] = v
	}
	return copied
}

// InitialPlayers returns the write-once initial player list delivered by
// the orchestrator, or an empty list if none has arrived.
func (a *Agent) InitialPlayers() []string {
	a.configMu.Lock()
	defer a.configMu.Unlock()

	copied := make([]string, len(a.initialPlayers))
	copy(copied, a.initialPlayers)
	return copied
}

// ConnectionInfo returns the connection description captured at startup.
func (a *Agent) ConnectionInfo() config.ConnectionInfo {
	return a.connInfo
}

// LogsDirectory returns the configured log folder, or "" when unset.
func (a *Agent) LogsDirectory() string {
	return a.setting(config.LogFolderKey)
}

// SharedContentDirectory returns the configured shared content folder, or
// "" when unset.
func (a *Agent) SharedContentDirectory() string {
	return a.setting(config.SharedContentFolderKey)
}

func (a *Agent) setting(key string) string {
	a.configMu.Lock()
	defer a.configMu.Unlock()
	return a.settings[key]
}

// LogMessage appends one line to the agent's log file.
func (a *Agent) LogMessage(message string) {
	a.log.Line(message)
}
