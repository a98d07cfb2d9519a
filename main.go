package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/involve-space/stratosim-station/assets"
	"github.com/involve-space/stratosim-station/catalog"
	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/mission"
	"github.com/involve-space/stratosim-station/simapi"
)

var (
	listenAddr = flag.String("addr", ":8080", "listen address")
	apiBase    = flag.String("api", "", "simulator API base URL (default: this station's own /api)")
	dataDir    = flag.String("data", "data", "directory for the asset database")
)

func main() {
	flag.Parse()

	events.Init()
	if err := assets.InitDatabase(*dataDir); err != nil {
		log.Fatalf("Failed to initialize asset database: %v", err)
	}

	// Set up graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		if err := assets.CloseDatabase(); err != nil {
			log.Printf("Error closing asset database: %v", err)
		}
		os.Exit(0)
	}()

	base := *apiBase
	if base == "" {
		base = fmt.Sprintf("http://127.0.0.1%s", *listenAddr)
	}
	client := simapi.NewClient(base)
	station := mission.NewStation(catalog.NewCache(), client)

	// Serve static files
	http.HandleFunc("/", serveFrontend)

	events.SetupHandlers()
	assets.SetupHandlers()
	mission.SetupHandlers(station)

	// The catalog comes from the collaborator API, so the fetches only
	// start once the listener is up.
	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", *listenAddr, err)
	}
	station.LoadCatalog(client)

	log.Printf("Station started at http://127.0.0.1%s", *listenAddr)
	http.Serve(ln, nil)
}

func serveFrontend(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "station.html")
}
