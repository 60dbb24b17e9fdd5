// Package main implements the MCU Control Bridge entry point.
//
// The binary runs the bridge against the loopback fake peripheral, which is
// useful for protocol development and integration testing. A real
// deployment embeds the bridge packages in the MCU host application and
// supplies its own peripheral.Caller; the host's run loop then invokes
// Server.Drain once per tick instead of the ticker below.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcu-control/mcb/internal/audit"
	"github.com/mcu-control/mcb/internal/command"
	"github.com/mcu-control/mcb/internal/config"
	"github.com/mcu-control/mcb/internal/peripheral/fake"
	"github.com/mcu-control/mcb/internal/queue"
	"github.com/mcu-control/mcb/internal/server"
	"github.com/mcu-control/mcb/internal/telemetry"
)

const Version = "1.0.0"

func main() {
	log.Printf("Starting MCU Control Bridge v%s", Version)

	// Step 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// Step 2: Initialize audit logger
	auditLogger, err := audit.NewLogger(cfg.AuditDir)
	if err != nil {
		log.Fatalf("Failed to initialize audit logger: %v", err)
	}
	log.Println("Audit logger initialized")

	// Step 3: Create the request queue shared by acceptor and drain loop
	requestQueue := queue.New()

	// Step 4: Initialize telemetry recorder
	recorder, err := telemetry.NewRecorder(cfg.MetricsEnabled, requestQueue.Len)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// Step 5: Create the command dispatcher
	dispatcher := command.NewDispatcher()
	dispatcher.SetAuditLogger(auditLogger)
	dispatcher.SetMetrics(recorder)

	// Step 6: Start the bridge server (binds the listener, launches the
	// acceptor goroutine)
	srv := server.New(cfg, requestQueue, dispatcher)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start bridge server: %v", err)
	}
	log.Printf("MCU Control Bridge started on %s", srv.Addr())

	// Step 7: Run the host tick loop. This goroutine owns the peripheral
	// caller; every peripheral invocation happens here.
	caller := fake.New()
	log.Println("Using loopback fake peripheral")

	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

loop:
	for {
		select {
		case <-ticker.C:
			srv.Drain(caller)
		case sig := <-shutdown:
			log.Printf("Received signal %v, initiating graceful shutdown...", sig)
			break loop
		}
	}

	// Stop accepting, then drain whatever is already queued.
	if err := srv.Stop(); err != nil {
		log.Printf("Error stopping bridge server: %v", err)
	} else {
		log.Println("Bridge server stopped")
	}
	srv.Drain(caller)

	if err := auditLogger.Close(); err != nil {
		log.Printf("Error closing audit logger: %v", err)
	}
	log.Println("Audit logger closed")

	log.Println("MCU Control Bridge shutdown complete")
}
