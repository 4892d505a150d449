package server

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
)

type httpServer struct {
	server *http.Server
	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			// the handler chain enforces RequestTimeout itself; the write
			// deadline leaves room for the timeout response
			WriteTimeout: cfg.RequestTimeout * 2,
		},
		logger: logger,
	}
}

func (h *httpServer) Addr() string {
	return h.server.Addr
}

// RunServer blocks until the server stops. After Shutdown it returns
// [http.ErrServerClosed].
func (h *httpServer) RunServer() error {
	err := h.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		h.logger.Err(err).Str("func", "*httpServer.RunServer").Msg("HTTP server ListenAndServe failed")
	}
	return err
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("func", "*httpServer.Shutdown").Msg("HTTP server Shutdown failed")
		return err
	}
	return nil
}
