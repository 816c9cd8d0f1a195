// ABOUTME: Tests for heartbeat request encoding and response decoding.
// ABOUTME: Covers partial replies, non-string members, and the date sentinel.

package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeartbeat(t *testing.T) {
	body, err := encodeHeartbeat(StateActive, true, []ConnectedPlayer{{PlayerID: "p1"}})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"CurrentGameState": "Active",
		"CurrentGameHealth": "Healthy",
		"CurrentPlayers": [{"PlayerId": "p1"}]
	}`, string(body))
}

func TestEncodeHeartbeat_Unhealthy(t *testing.T) {
	body, err := encodeHeartbeat(StateStandingBy, false, nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"CurrentGameState": "StandingBy",
		"CurrentGameHealth": "Unhealthy",
		"CurrentPlayers": []
	}`, string(body))
}

func TestDecode_Malformed(t *testing.T) {
	for _, body := range []string{"", "not json", `"just a string"`, `[1,2,3]`, `{"unterminated": `} {
		_, err := decodeHeartbeatResponse([]byte(body))
		assert.ErrorIs(t, err, ErrMalformedResponse, "body=%q", body)
	}
}

func TestDecode_EmptyObject(t *testing.T) {
	resp, err := decodeHeartbeatResponse([]byte(`{}`))
	require.NoError(t, err)

	assert.Empty(t, resp.ConfigEntries)
	assert.Nil(t, resp.InitialPlayers)
	assert.False(t, resp.HasMaintenance)
	assert.False(t, resp.HasOperation)
}

func TestDecode_SessionConfigStringsOnly(t *testing.T) {
	resp, err := decodeHeartbeatResponse([]byte(`{
		"sessionConfig": {
			"sessionCookie": "cookie-1",
			"sessionId": "s-1",
			"maxPlayers": 16,
			"nested": {"x": "y"}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"sessionCookie": "cookie-1",
		"sessionId":     "s-1",
	}, resp.ConfigEntries)
}

func TestDecode_InitialPlayersAndMetadata(t *testing.T) {
	resp, err := decodeHeartbeatResponse([]byte(`{
		"sessionConfig": {
			"sessionId": "s-1",
			"initialPlayers": ["p1", "p2"],
			"metadata": {"matchType": "ranked", "rounds": 3}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, resp.InitialPlayers)
	assert.Equal(t, "ranked", resp.ConfigEntries["matchType"])
	_, hasRounds := resp.ConfigEntries["rounds"]
	assert.False(t, hasRounds, "non-string metadata members are ignored")
}

func TestDecode_OperationAndMaintenance(t *testing.T) {
	resp, err := decodeHeartbeatResponse([]byte(`{
		"operation": "Active",
		"nextScheduledMaintenanceUtc": "2026-09-01T03:00:00Z"
	}`))
	require.NoError(t, err)

	assert.True(t, resp.HasOperation)
	assert.Equal(t, "Active", resp.OperationRaw)
	assert.True(t, resp.HasMaintenance)
	assert.Equal(t, "2026-09-01T03:00:00Z", resp.MaintenanceRaw)
}

func TestParseMaintenanceDate(t *testing.T) {
	want := time.Date(2026, time.September, 1, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, want, parseMaintenanceDate("2026-09-01T03:00:00"))
	assert.Equal(t, want, parseMaintenanceDate("2026-09-01T03:00:00Z"))
}

func TestParseMaintenanceDate_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "soon", "2026-09-01", "01/09/2026 03:00"} {
		assert.Equal(t, maintenanceSentinel, parseMaintenanceDate(raw), "raw=%q", raw)
	}
}

func TestOperationTable(t *testing.T) {
	cases := map[string]Operation{
		"Invalid":     OpInvalid,
		"Continue":    OpContinue,
		"GetManifest": OpGetManifest,
		"Quarantine":  OpQuarantine,
		"Active":      OpActive,
		"Terminate":   OpTerminate,
	}
	for raw, want := range cases {
		got, ok := operationTable[raw]
		require.True(t, ok, raw)
		assert.Equal(t, want, got)
	}

	_, ok := operationTable["terminate"]
	assert.False(t, ok, "lookup is case-sensitive per the fixed table")
}
