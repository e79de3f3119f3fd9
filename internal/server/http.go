package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
)

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (*httpServer, error) {
	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       idleTimeout,
	}

	if cfg.HTTPSMode {
		tlsConfig, err := BuildTLSConfig(cfg.TLS)
		if err != nil {
			return nil, err
		}
		srv.TLSConfig = tlsConfig
	}

	return &httpServer{
		server: srv,
		logger: logger,
	}, nil
}

func (h *httpServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("error listening on %s: %w", h.server.Addr, err)
	}
	return ln, nil
}

// serve blocks until the server is shut down. A graceful shutdown is not
// reported as an error.
func (h *httpServer) serve(ln net.Listener) error {
	var err error
	if h.server.TLSConfig != nil {
		err = h.server.ServeTLS(ln, "", "")
	} else {
		err = h.server.Serve(ln)
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (h *httpServer) shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server Shutdown")
	return h.server.Shutdown(ctx)
}
