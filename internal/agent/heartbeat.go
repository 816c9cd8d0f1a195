// ABOUTME: The background heartbeat loop and response application.
// ABOUTME: One worker goroutine per agent, woken early by state transitions.

package agent

import (
	"time"
)

// heartbeatInterval is the fixed cadence of the loop when nothing wakes it
// early.
const heartbeatInterval = 1000 * time.Millisecond

// heartbeatLoop runs for the agent's lifetime. Each cycle waits out the
// interval or an early wake, re-checks for shutdown, then performs one
// blocking heartbeat round trip.
func (a *Agent) heartbeatLoop() {
	defer a.wg.Done()

	timer := time.NewTimer(heartbeatInterval)
	defer timer.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-a.wake.C():
			a.logger.Debug("state transition signaled an early heartbeat")
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}
		timer.Reset(heartbeatInterval)

		// Skip the send if we were woken for shutdown.
		select {
		case <-a.stop:
			return
		default:
		}

		a.doHeartbeat()
	}
}

// doHeartbeat performs one encode → send → decode → apply cycle. Every
// failure is logged and swallowed; nothing here terminates the loop.
func (a *Agent) doHeartbeat() {
	if cb := a.callbacks.getHealth(); cb != nil {
		a.healthy = cb()
	}

	body, err := encodeHeartbeat(a.State(), a.healthy, a.ConnectedPlayers())
	if err != nil {
		a.logger.Error("failed to encode heartbeat request", "error", err)
		return
	}

	status, respBody, err := a.client.Patch(a.heartbeatURL, body)
	if err != nil {
		a.logger.Error("heartbeat send failed", "error", err)
		return
	}
	if status >= 300 {
		a.logger.Error("received non-success code from agent endpoint",
			"status", status,
			"body", string(respBody),
		)
		return
	}

	resp, err := decodeHeartbeatResponse(respBody)
	if err != nil {
		a.logger.Error("failed to parse heartbeat response",
			"error", err,
			"body", string(respBody),
		)
		return
	}

	a.applyHeartbeatResponse(resp)
}

// applyHeartbeatResponse merges session config, adopts the initial player
// list exactly once, fires the maintenance callback on changed timestamps,
// and dispatches the orchestrator operation.
func (a *Agent) applyHeartbeatResponse(resp *heartbeatResponse) {
	if len(resp.ConfigEntries) > 0 || len(resp.InitialPlayers) > 0 {
		a.configMu.Lock()
		for k, v := range resp.ConfigEntries {
			a.settings[k] = v
		}
		// The first non-empty list wins; later replies never overwrite it.
		if len(a.initialPlayers) == 0 && len(resp.InitialPlayers) > 0 {
			a.initialPlayers = resp.InitialPlayers
		}
		a.configMu.Unlock()
	}

	if resp.HasMaintenance {
		next := parseMaintenanceDate(resp.MaintenanceRaw)
		if cb := a.callbacks.getMaintenance(); cb != nil {
			if a.cachedMaintenance.IsZero() || !next.Equal(a.cachedMaintenance) {
				cb(next)
				a.cachedMaintenance = next
			}
		}
	}

	if resp.HasOperation {
		a.applyOperation(resp.OperationRaw)
	}
}

// applyOperation maps the operation string through the fixed table and
// performs the corresponding transition.
func (a *Agent) applyOperation(raw string) {
	a.logger.Debug("heartbeat exchange",
		"state", string(a.State()),
		"operation", raw,
	)

	op, ok := operationTable[raw]
	if !ok {
		a.logger.Warn("unknown operation received", "operation", raw)
		return
	}

	switch op {
	case OpContinue:
		// No action required.
	case OpActive:
		if a.State() != StateActive {
			a.Transition(StateActive)
		}
	case OpTerminate:
		// Repeated terminate notices must not re-dispatch the shutdown
		// callback.
		if a.State() != StateTerminating {
			a.Transition(StateTerminating)
			a.dispatchShutdown()
		}
	default:
		a.logger.Warn("unhandled operation received", "operation", op.String())
	}
}
