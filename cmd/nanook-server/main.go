// Command nanook-server serves the report of a finished analysis as JSON.
//
// Usage:
//
//	nanook-server [options]
//
// Options:
//
//	--port       Port to listen on (default: 8080)
//	--host       Host to bind to (default: localhost)
//	--base-dir   Directory holding sample directories (default: .)
//	--sample     Sample whose analysis/report.json is served
//	--report     Path of a report.json, overriding --base-dir and --sample
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/grailbio/base/log"
	"github.com/spf13/pflag"

	"github.com/aria-lang/nanook-go/api/handlers"
	"github.com/aria-lang/nanook-go/internal/options"
)

func newRouter(reports *handlers.Reports) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Route("/api", reports.Mount)
	return r
}

func main() {
	opts := options.Default()
	port := pflag.Int("port", 8080, "Port to listen on")
	host := pflag.String("host", "localhost", "Host to bind to")
	reportPath := pflag.String("report", "", "Path of the report.json to serve")
	pflag.StringVarP(&opts.BaseDir, "base-dir", "b", opts.BaseDir, "Directory holding sample directories")
	pflag.StringVarP(&opts.Sample, "sample", "s", "", "Sample whose report is served")
	pflag.Parse()

	path := *reportPath
	if path == "" {
		if opts.Sample == "" {
			log.Error.Printf("one of --report or --sample is required")
			os.Exit(2)
		}
		path = opts.ReportPath()
	}
	reports := handlers.NewReports(path)
	if _, err := reports.Load(); err != nil {
		log.Error.Printf("%v (serving 503 until the report exists)", err)
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(reports),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Printf("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("could not shut down gracefully: %v", err)
		}
		close(done)
	}()

	log.Printf("serving %s on http://%s", path, addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("could not listen on %s: %v", addr, err)
	}

	<-done
	log.Printf("server stopped")
}
