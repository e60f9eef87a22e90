/*
main.go - HTTP server entry point

Startup sequence mirrors the teacher's cmd/server/main.go: load config,
build the handler and router, serve with a bounded graceful shutdown
window. Unlike the teacher there is no database to open or close —
every request is self-contained. Environment loading via godotenv
follows web3guy0-polybot's cmd/polybot/main.go pattern, since this
deployment's tuning knobs (solver timeouts) suit env vars better than
the teacher's flag-only approach.

ENVIRONMENT:
  CP_MAX_SECONDS   overrides the CP solver's per-stage time budget

SEE ALSO:
  - httpapi/server.go: Router configuration
  - httpapi/handlers.go: HTTP handlers
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/warp/cashflow-scheduler/dispatch"
	"github.com/warp/cashflow-scheduler/httpapi"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found, using environment variables")
	}

	cfg := dispatch.DefaultConfig()
	cfg.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	if v := os.Getenv("CP_MAX_SECONDS"); v != "" {
		var seconds float64
		if _, err := fmt.Sscanf(v, "%f", &seconds); err == nil {
			cfg.CPConfig.MaxTimeInSeconds = seconds
		}
	}

	handler := httpapi.NewHandler(cfg)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("cashflow scheduler listening on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("server stopped")
}
