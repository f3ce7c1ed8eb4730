package service

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogfront/app/client"
	"blogfront/app/config"
	"blogfront/app/middleware"
	"blogfront/app/routes"

	"github.com/dgraph-io/badger/v4"
)

// shutdownTimeout bounds how long in-flight requests may take once a
// shutdown signal arrives.
const shutdownTimeout = 10 * time.Second

// newServer builds the HTTP server for the front end on an open store.
func newServer(cfg *config.Config, db *badger.DB) *http.Server {
	middleware.SecureCookies = cfg.CookieSecure

	router := routes.SetupRoutes(db, routes.Options{
		API:            client.New(cfg.RequestTimeout),
		DefaultBaseURL: cfg.DefaultBaseURL,
	})

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		// Rendering a page may wait on the blog API twice (mutation and reload).
		WriteTimeout: 2*cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// RunAppServer starts the front end and blocks until SIGINT or SIGTERM.
func RunAppServer(cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Addr, "address to listen on")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	cfg.Addr = *addr

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Printf("Failed to create data directory: %v", err)
		return 1
	}
	db, err := openDB(cfg.DataDir)
	if err != nil {
		log.Printf("Failed to open Badger DB: %v", err)
		return 1
	}
	defer db.Close()

	srv := newServer(cfg, db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveUntilDone(ctx, srv)
}

// serveUntilDone runs srv until ctx is cancelled, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, srv *http.Server) int {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting blog front end on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
		return 1
	}
	return 0
}
