// ABOUTME: Sample game server wired to the SDK against a local orchestrator.
// ABOUTME: Usage: gsdk-sample [-debug] (expects HEARTBEAT_ENDPOINT et al. in the env)

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/playsrv/gsdk"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if !gsdk.Start(*debug) {
		log.Fatal("gsdk failed to start; check HEARTBEAT_ENDPOINT and SESSION_HOST_ID")
	}
	defer gsdk.Stop()

	terminated := make(chan struct{})
	gsdk.RegisterShutdownCallback(func() {
		color.Red("orchestrator requested termination")
		close(terminated)
	})
	gsdk.RegisterHealthCallback(func() bool { return true })
	gsdk.RegisterMaintenanceCallback(func(ts time.Time) {
		color.Yellow("maintenance scheduled for %s", ts.Format(time.RFC3339))
	})

	info := gsdk.GetConnectionInfo()
	for _, p := range info.GamePorts {
		fmt.Printf("port %s: listen %d, connect %d\n", p.Name, p.ServerListeningPort, p.ClientConnectionPort)
	}

	color.Cyan("standing by for players")
	if !gsdk.ReadyForPlayers() {
		color.Red("terminated before activation")
		return
	}

	color.Green("session active: %s", gsdk.GetConfigSettings()["sessionId"])
	gsdk.LogMessage("session active, accepting players")

	players := make([]gsdk.ConnectedPlayer, 0, 4)
	for _, id := range gsdk.GetInitialPlayers() {
		players = append(players, gsdk.ConnectedPlayer{PlayerID: id})
	}
	gsdk.UpdateConnectedPlayers(players)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case <-terminated:
	case <-interrupt:
		color.Red("interrupted")
	}
}
