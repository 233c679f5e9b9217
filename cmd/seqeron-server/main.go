// Command seqeron-server provides a REST API for alignment operations.
//
// Usage:
//
//	seqeron-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/seqeron/seqeron-go/api/handlers"
	"github.com/seqeron/seqeron-go/api/middleware"
	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(seqeron.Version()))
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Sequence endpoints
		r.Route("/sequence", func(r chi.Router) {
			r.Post("/info", handlers.SequenceInfoHandler)
			r.Post("/complement", handlers.ComplementHandler)
			r.Post("/reverse-complement", handlers.ReverseComplementHandler)
			r.Post("/validate", handlers.ValidateHandler)
		})

		// Pairwise alignment endpoints
		r.Route("/alignment", func(r chi.Router) {
			r.Post("/local", handlers.LocalAlignHandler)
			r.Post("/global", handlers.GlobalAlignHandler)
			r.Post("/semiglobal", handlers.SemiGlobalAlignHandler)
			r.Post("/score", handlers.AlignmentScoreHandler)
			r.Post("/format", handlers.AlignmentFormatHandler)
		})

		// Multiple alignment
		r.Post("/msa", handlers.MultipleAlignHandler)

		// Suffix tree index endpoints
		r.Route("/index", func(r chi.Router) {
			r.Post("/search", handlers.IndexSearchHandler)
			r.Post("/summary", handlers.IndexSummaryHandler)
			r.Post("/common-substrings", handlers.CommonSubstringsHandler)
			r.Post("/anchors", handlers.AnchorsHandler)
		})
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("could not gracefully shutdown", "err", err)
		}
		close(done)
	}()

	log.Info("seqeron API server starting", "addr", "http://"+addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("could not listen", "addr", addr, "err", err)
	}

	<-done
	log.Info("server stopped")
}
