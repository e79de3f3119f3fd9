package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/eigen-library/internal/config"
	"github.com/MKhiriev/eigen-library/internal/handler"
	"github.com/MKhiriev/eigen-library/internal/logger"
	"github.com/MKhiriev/eigen-library/internal/service"
)

// syncBuffer guards the log buffer shared with the serving goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBufferedLogger() (*logger.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return &logger.Logger{Logger: zerolog.New(buf)}, buf
}

func pingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
}

func newTestServer(t *testing.T, cfg config.Server, log *logger.Logger) *server {
	t.Helper()

	httpSrv, err := newHTTPServer(pingHandler(), cfg, log)
	require.NoError(t, err)

	return &server{
		httpServer: httpSrv,
		cfg:        cfg,
		localIP:    func() (string, error) { return "10.0.0.7", nil },
		logger:     log,
	}
}

func TestNewServer_NoHandlers(t *testing.T) {
	_, err := NewServer(nil, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)

	_, err = NewServer(&handler.Handlers{}, config.Server{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_HTTPSWithoutCertificates(t *testing.T) {
	handlers, err := handler.NewHandlers(&service.Services{}, config.Server{}, logger.Nop())
	require.NoError(t, err)

	cfg := config.Server{
		Host:      "127.0.0.1",
		Port:      "0",
		HTTPSMode: true,
		TLS:       config.TLS{KeyFile: "/nonexistent/private.key", CertFile: "/nonexistent/certificate.crt"},
	}

	_, err = NewServer(handlers, cfg, logger.Nop())
	assert.ErrorIs(t, err, ErrReadingTLSKey)
}

func TestNewServer_AppliesTimeouts(t *testing.T) {
	handlers, err := handler.NewHandlers(&service.Services{}, config.Server{}, logger.Nop())
	require.NoError(t, err)

	cfg := config.Server{Host: "0.0.0.0", Port: "3000", RequestTimeout: 30 * time.Second}

	srv, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)

	httpSrv := srv.(*server).httpServer.server
	assert.Equal(t, "0.0.0.0:3000", httpSrv.Addr)
	assert.Equal(t, 30*time.Second, httpSrv.ReadTimeout)
	assert.Equal(t, 30*time.Second, httpSrv.WriteTimeout)
	assert.Nil(t, httpSrv.TLSConfig)
}

func TestHTTPServer_Serves(t *testing.T) {
	s := newTestServer(t, config.Server{Host: "127.0.0.1", Port: "0"}, logger.Nop())

	ln, err := s.httpServer.listen()
	require.NoError(t, err)
	go func() { _ = s.httpServer.serve(ln) }()
	defer s.Shutdown()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
}

func TestRun_StopsGracefully(t *testing.T) {
	log, buf := newBufferedLogger()
	s := newTestServer(t, config.Server{Host: "127.0.0.1", Port: "0"}, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "Application Started at port")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, buf.String(), "server Shutdown gracefully")
}

func TestRun_ListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, port, err := net.SplitHostPort(busy.Addr().String())
	require.NoError(t, err)

	s := newTestServer(t, config.Server{Host: "127.0.0.1", Port: port}, logger.Nop())

	err = s.run(context.Background())
	assert.Error(t, err)
}

func TestLogStarted(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		log, buf := newBufferedLogger()
		s := newTestServer(t, config.Server{Port: "3000", Mode: config.ModeProduction}, log)

		s.logStarted(&net.TCPAddr{IP: net.IPv4zero, Port: 3000})

		assert.Contains(t, buf.String(), "Application Started at port: 3000")
		assert.NotContains(t, buf.String(), "Current IP")
	})

	t.Run("development", func(t *testing.T) {
		log, buf := newBufferedLogger()
		s := newTestServer(t, config.Server{Port: "3000", Mode: config.ModeDevelopment}, log)

		s.logStarted(&net.TCPAddr{IP: net.IPv4zero, Port: 3000})

		assert.Contains(t, buf.String(), "Application Started at port: 3000")
		assert.Contains(t, buf.String(), "Current IP: 10.0.0.7")
	})

	t.Run("development without network", func(t *testing.T) {
		log, buf := newBufferedLogger()
		s := newTestServer(t, config.Server{Port: "3000", Mode: config.ModeDevelopment}, log)
		s.localIP = func() (string, error) { return "", errors.New("no interfaces") }

		s.logStarted(&net.TCPAddr{IP: net.IPv4zero, Port: 3000})

		assert.Contains(t, buf.String(), "cannot resolve current IP")
	})
}

func TestHTTPSServer(t *testing.T) {
	cfg := config.Server{
		Host:      "127.0.0.1",
		Port:      "0",
		HTTPSMode: true,
		TLS:       writeTestCertificate(t, ""),
	}
	s := newTestServer(t, cfg, logger.Nop())
	require.NotNil(t, s.httpServer.server.TLSConfig)

	ln, err := s.httpServer.listen()
	require.NoError(t, err)
	go func() { _ = s.httpServer.serve(ln) }()
	defer s.Shutdown()

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // self-signed test certificate
		},
	}

	resp, err := client.Get("https://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, resp.TLS)
	assert.GreaterOrEqual(t, resp.TLS.Version, uint16(tls.VersionTLS12))
}
