// ABOUTME: Minimal fake orchestrator for E2E testing — serves the heartbeat PATCH endpoint.
// ABOUTME: Usage: fake-orchestrator [-addr :56001] [-activate-after 3] [-terminate-after 0]

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

type heartbeat struct {
	CurrentGameState  string `json:"CurrentGameState"`
	CurrentGameHealth string `json:"CurrentGameHealth"`
	CurrentPlayers    []struct {
		PlayerID string `json:"PlayerId"`
	} `json:"CurrentPlayers"`
}

type response struct {
	Operation                   string         `json:"operation,omitempty"`
	SessionConfig               map[string]any `json:"sessionConfig,omitempty"`
	NextScheduledMaintenanceUTC string         `json:"nextScheduledMaintenanceUtc,omitempty"`
}

func main() {
	addr := flag.String("addr", ":56001", "listen address")
	activateAfter := flag.Int("activate-after", 3, "heartbeats before sending Active (0 disables)")
	terminateAfter := flag.Int("terminate-after", 0, "heartbeats before sending Terminate (0 disables)")
	sessionID := flag.String("session-id", "fake-session", "sessionId delivered on activation")
	players := flag.String("initial-players", "", "comma-separated initialPlayers delivered on activation")
	maintenance := flag.String("maintenance", "", "nextScheduledMaintenanceUtc to include in every reply")
	flag.Parse()

	var mu sync.Mutex
	beats := 0

	http.HandleFunc("/v1/sessionHosts/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var hb heartbeat
		if err := json.NewDecoder(r.Body).Decode(&hb); err != nil {
			http.Error(w, "bad heartbeat", http.StatusBadRequest)
			return
		}

		mu.Lock()
		beats++
		n := beats
		mu.Unlock()

		serverID := strings.TrimPrefix(r.URL.Path, "/v1/sessionHosts/")
		log.Printf("beat %d from %s: state=%s health=%s players=%d",
			n, serverID, hb.CurrentGameState, hb.CurrentGameHealth, len(hb.CurrentPlayers))

		resp := response{Operation: "Continue", NextScheduledMaintenanceUTC: *maintenance}

		switch {
		case *terminateAfter > 0 && n >= *terminateAfter:
			resp.Operation = "Terminate"
		case *activateAfter > 0 && n >= *activateAfter && hb.CurrentGameState == "StandingBy":
			resp.Operation = "Active"
			resp.SessionConfig = map[string]any{"sessionId": *sessionID}
			if *players != "" {
				resp.SessionConfig["initialPlayers"] = strings.Split(*players, ",")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})

	fmt.Printf("fake orchestrator listening on %s\n", *addr)
	srv := &http.Server{Addr: *addr, ReadHeaderTimeout: 10 * time.Second}
	log.Fatal(srv.ListenAndServe())
}
