package server

import (
	"context"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/handler"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/utils"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	cfg        config.Server

	// localIP is swapped in tests.
	localIP func() (string, error)

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	httpSrv, err := newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	if err != nil {
		return nil, err
	}

	return &server{
		httpServer: httpSrv,
		cfg:        cfg,
		localIP:    utils.LocalIP,
		logger:     logger,
	}, nil
}

// RunServer serves until SIGTERM, SIGINT or SIGQUIT is received.
func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.shutdown(ctx); err != nil {
		s.logger.Err(err).Msg("HTTP server Shutdown")
	}
}

func (s *server) run(ctx context.Context) error {
	ln, err := s.httpServer.listen()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(ln)
	}()

	s.logStarted(ln.Addr())

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	}

	s.Shutdown()
	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) logStarted(addr net.Addr) {
	port := s.cfg.Port
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcpAddr.Port)
	}

	s.logger.Info().Msgf("Application Started at port: %s", port)

	if !s.cfg.IsDevelopment() {
		return
	}

	ip, err := s.localIP()
	if err != nil {
		s.logger.Warn().Err(err).Msg("cannot resolve current IP")
		return
	}
	s.logger.Info().Msgf("Current IP: %s", ip)
}
