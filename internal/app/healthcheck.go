package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/xenoarch/internal/ctxlog"
)

// healthHandler answers liveness checks.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// newServer builds the HTTP server carrying the health endpoint and, when
// display is non-nil, the socket.io display endpoint.
func (a *App) newServer(port int, display http.Handler) *http.Server {
	a.logger.Debug("Configuring HTTP server.")
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	if display != nil {
		mux.Handle("/socket.io/", display)
	}
	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a.httpServer
}

func (a *App) closeServer() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Closing HTTP server...")

	if a.httpServer == nil {
		logger.Debug("HTTP server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return err
	}

	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
