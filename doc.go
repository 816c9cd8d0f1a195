// Package gsdk embeds a session agent inside a game server process. The
// agent heartbeats lifecycle state and health to the orchestrator and
// applies the directives that come back in each reply.
//
// # Lifecycle
//
// A typical host:
//
//	if !gsdk.Start(false) {
//	    log.Fatal("gsdk failed to start")
//	}
//	defer gsdk.Stop()
//
//	gsdk.RegisterShutdownCallback(onShutdown)
//	gsdk.RegisterHealthCallback(isHealthy)
//	gsdk.RegisterMaintenanceCallback(onMaintenance)
//
//	if !gsdk.ReadyForPlayers() {
//	    // terminated before activation
//	    return
//	}
//	// session is active; accept connections
//
// # Configuration
//
// Startup configuration comes from the file named by GSDK_CONFIG_FILE, or
// from environment variables when no file is present. Dynamic session
// configuration delivered over the heartbeat is merged into the same map;
// read it with GetConfigSettings.
//
// # Heartbeat Protocol
//
// Every second (sooner after a state transition) the agent PATCHes
//
//	http://<endpoint>/v1/sessionHosts/<server-id>
//
// with the current game state, health, and connected players, and applies
// the reply's session config, maintenance schedule, and operation. See the
// internal/agent package for the protocol details.
//
// # Threading
//
// All exported functions are safe for concurrent use from any goroutine.
// Heartbeating happens on one background goroutine owned by the SDK; the
// shutdown callback runs on its own goroutine so host teardown never blocks
// the heartbeat.
package gsdk
