// ABOUTME: Heartbeat wire protocol: request encoding and response decoding.
// ABOUTME: Tolerates partial replies; only malformed JSON aborts a cycle.

package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrMalformedResponse reports a heartbeat response body that is not a JSON
// object. The cycle's effects are dropped and the loop continues.
var ErrMalformedResponse = errors.New("malformed heartbeat response")

// Operation is an orchestrator directive delivered in a heartbeat response.
type Operation int

const (
	OpInvalid Operation = iota
	OpContinue
	OpGetManifest
	OpQuarantine
	OpActive
	OpTerminate
)

var operationNames = map[Operation]string{
	OpInvalid:     "Invalid",
	OpContinue:    "Continue",
	OpGetManifest: "GetManifest",
	OpQuarantine:  "Quarantine",
	OpActive:      "Active",
	OpTerminate:   "Terminate",
}

// operationTable is the fixed lookup from wire strings to operations.
// Strings absent from the table are logged as unknown and ignored.
var operationTable = map[string]Operation{
	"Invalid":     OpInvalid,
	"Continue":    OpContinue,
	"GetManifest": OpGetManifest,
	"Quarantine":  OpQuarantine,
	"Active":      OpActive,
	"Terminate":   OpTerminate,
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// heartbeatRequest is the JSON body PATCHed to the orchestrator each cycle.
type heartbeatRequest struct {
	CurrentGameState  string            `json:"CurrentGameState"`
	CurrentGameHealth string            `json:"CurrentGameHealth"`
	CurrentPlayers    []ConnectedPlayer `json:"CurrentPlayers"`
}

// encodeHeartbeat builds the request body from a snapshot of agent state.
func encodeHeartbeat(state GameState, healthy bool, players []ConnectedPlayer) ([]byte, error) {
	health := "Healthy"
	if !healthy {
		health = "Unhealthy"
	}
	if players == nil {
		players = []ConnectedPlayer{}
	}

	return json.Marshal(heartbeatRequest{
		CurrentGameState:  string(state),
		CurrentGameHealth: health,
		CurrentPlayers:    players,
	})
}

// heartbeatResponse is the decoded form of an orchestrator reply. Every
// field is optional; absent fields leave the corresponding agent state
// untouched.
type heartbeatResponse struct {
	// ConfigEntries holds the string-valued members of sessionConfig plus
	// sessionConfig.metadata, in arrival order of precedence.
	ConfigEntries map[string]string

	// InitialPlayers is sessionConfig.initialPlayers, or nil when absent.
	InitialPlayers []string

	// MaintenanceRaw is the nextScheduledMaintenanceUtc string; HasMaintenance
	// distinguishes an absent field from an empty one.
	MaintenanceRaw string
	HasMaintenance bool

	// OperationRaw is the operation string; HasOperation distinguishes an
	// absent field.
	OperationRaw string
	HasOperation bool
}

// decodeHeartbeatResponse parses an orchestrator reply. Non-string members
// of sessionConfig and metadata are ignored rather than rejected; only a
// body that is not a JSON object fails the decode.
func decodeHeartbeatResponse(body []byte) (*heartbeatResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrMalformedResponse
	}

	resp := &heartbeatResponse{ConfigEntries: make(map[string]string)}

	if sc := root.Get("sessionConfig"); sc.IsObject() {
		sc.ForEach(func(key, value gjson.Result) bool {
			if value.Type == gjson.String {
				resp.ConfigEntries[key.String()] = value.String()
			}
			return true
		})

		if players := sc.Get("initialPlayers"); players.IsArray() {
			for _, p := range players.Array() {
				resp.InitialPlayers = append(resp.InitialPlayers, p.String())
			}
		}

		if md := sc.Get("metadata"); md.IsObject() {
			md.ForEach(func(key, value gjson.Result) bool {
				if value.Type == gjson.String {
					resp.ConfigEntries[key.String()] = value.String()
				}
				return true
			})
		}
	}

	if m := root.Get("nextScheduledMaintenanceUtc"); m.Exists() {
		resp.HasMaintenance = true
		resp.MaintenanceRaw = m.String()
	}

	if op := root.Get("operation"); op.Exists() {
		resp.HasOperation = true
		resp.OperationRaw = op.String()
	}

	return resp, nil
}

// maintenanceSentinel is returned for unparseable maintenance dates instead
// of failing the rest of the decode.
var maintenanceSentinel = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// parseMaintenanceDate parses an ISO-8601 UTC date-time of the form
// yyyy-mm-ddThh:mm:ss. A trailing Z is tolerated and ignored.
func parseMaintenanceDate(raw string) time.Time {
	trimmed := strings.TrimSuffix(raw, "Z")
	t, err := time.ParseInLocation("2006-01-02T15:04:05", trimmed, time.UTC)
	if err != nil {
		return maintenanceSentinel
	}
	return t
}
