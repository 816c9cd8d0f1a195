// ABOUTME: End-to-end tests for the public SDK surface.
// ABOUTME: Runs the singleton against a mock orchestrator over real HTTP.

package gsdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startAgainst points the SDK at the given mock orchestrator and starts it.
// The singleton is torn down when the test finishes.
func startAgainst(t *testing.T, srv *httptest.Server) {
	t.Helper()

	t.Setenv("HEARTBEAT_ENDPOINT", strings.TrimPrefix(srv.URL, "http://"))
	t.Setenv("SESSION_HOST_ID", "host-e2e")
	t.Setenv("GSDK_DISABLE_LOG", "true")

	require.True(t, Start(false))
	t.Cleanup(Stop)
}

func TestStart_FailsWithoutRequiredConfig(t *testing.T) {
	t.Setenv("GSDK_CONFIG_FILE", "")
	t.Setenv("HEARTBEAT_ENDPOINT", "")
	t.Setenv("SESSION_HOST_ID", "")

	assert.False(t, Start(false))
	assert.False(t, WaitUntilReady(), "unstarted SDK reports not ready")
	assert.Empty(t, GetConfigSettings())
	assert.Empty(t, GetLogsDirectory())
}

func TestStart_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"operation": "Continue"}`))
	}))
	defer srv.Close()

	startAgainst(t, srv)
	assert.True(t, Start(false), "second Start returns true without reinitializing")
}

func TestReadyForPlayers_ActivationRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/sessionHosts/host-e2e", r.URL.Path)

		var req struct {
			CurrentGameState string `json:"CurrentGameState"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.CurrentGameState == string(StateStandingBy) {
			w.Write([]byte(`{
				"operation": "Active",
				"sessionConfig": {
					"sessionId": "s-42",
					"sessionCookie": "cookie",
					"initialPlayers": ["p1", "p2"]
				},
				"nextScheduledMaintenanceUtc": "2026-09-01T03:00:00Z"
			}`))
			return
		}
		w.Write([]byte(`{"operation": "Continue"}`))
	}))
	defer srv.Close()

	startAgainst(t, srv)

	maintenance := make(chan time.Time, 1)
	RegisterMaintenanceCallback(func(ts time.Time) { maintenance <- ts })
	RegisterHealthCallback(func() bool { return true })

	require.True(t, ReadyForPlayers())

	settings := GetConfigSettings()
	assert.Equal(t, "s-42", settings["sessionId"])
	assert.Equal(t, "cookie", settings["sessionCookie"])
	assert.Equal(t, []string{"p1", "p2"}, GetInitialPlayers())

	select {
	case ts := <-maintenance:
		assert.Equal(t, time.Date(2026, time.September, 1, 3, 0, 0, 0, time.UTC), ts)
	case <-time.After(5 * time.Second):
		t.Fatal("maintenance callback never fired")
	}

	UpdateConnectedPlayers([]ConnectedPlayer{{PlayerID: "p1"}})
	LogMessage("match underway")
}

func TestTermination_BeforeActivation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"operation": "Terminate"}`))
	}))
	defer srv.Close()

	startAgainst(t, srv)

	shutdown := make(chan struct{})
	RegisterShutdownCallback(func() { close(shutdown) })

	assert.False(t, ReadyForPlayers(), "terminated before activation")

	select {
	case <-shutdown:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown callback never fired")
	}
}
