// Package config resolves the session agent's startup configuration.
//
// # Overview
//
// Configuration comes from exactly one source per process, selected by
// Detect():
//
//  1. The file named by the GSDK_CONFIG_FILE environment variable, if it
//     exists and is readable. The loader accepts YAML or JSON (YAML 1.2 is
//     a JSON superset) and expands ${VAR_NAME} references.
//  2. Otherwise, environment variables (HEARTBEAT_ENDPOINT,
//     SESSION_HOST_ID, and friends).
//
// # Settings Map
//
// Settings() flattens a Source into the agent's initial key/value snapshot.
// Certificates, build metadata, and game ports are folded into the same map
// as the ten well-known scalar settings; see the *Key constants for their
// canonical names. Session configuration received later over the heartbeat
// is merged into the same map by the agent.
//
// # Validation
//
// Validate() enforces the two settings the agent cannot run without: the
// heartbeat endpoint and the server id. Their absence aborts startup.
package config
