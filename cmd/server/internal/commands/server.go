package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	httpmiddleware "github.com/wolfeidau/tempo-service/internal/http"
	"github.com/wolfeidau/tempo-service/internal/logger"
	"github.com/wolfeidau/tempo-service/internal/server"
	"github.com/wolfeidau/tempo-service/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type ServerCmd struct {
	// Server configuration
	Listen        string        `help:"listen address in <host>:<port> form" default:"0.0.0.0:8000" env:"LISTEN_AT"`
	ShutdownGrace time.Duration `help:"how long to wait for in-flight requests on shutdown" default:"10s" env:"TEMPO_SHUTDOWN_GRACE"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"*" env:"TEMPO_CORS_ORIGINS"`

	// Operational modes
	Tracing bool `help:"enable tracing" default:"false" env:"TEMPO_TRACING"`
}

func (c *ServerCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug)

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	// Setup telemetry if enabled
	if c.Tracing {
		log.Info().Msg("Tracing is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, "tempo-service", globals.Version)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	api := server.NewServer(globals.Version)

	// Innermost first: routes, CORS, then request logging with identity
	// middleware outside it so the log entries carry IP and request ID.
	handler := withCORS(c.CORSOrigins, api.Handler())
	handler = logger.NewHTTPRequests(log)(handler)
	handler = httpmiddleware.ClientIPMiddleware()(handler)
	handler = httpmiddleware.RequestIDMiddleware()(handler)
	handler = gzhttp.GzipHandler(handler)
	if c.Tracing {
		handler = otelhttp.NewHandler(handler, "tempo-service")
	}

	// The address must validate before any socket is opened; a malformed
	// value is a configuration error, not a bind error.
	ln, err := bindListener(c.Listen)
	if err != nil {
		return err
	}
	defer func() {
		_ = ln.Close()
	}()

	srv := configureHTTPServer(handler)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	log.Info().Str("addr", ln.Addr().String()).Msg("Listening for connections")

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("grace", c.ShutdownGrace).Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return <-serveErr
}

// validateListenAddr checks that addr is a syntactically valid host:port pair
// with a numeric port.
func validateListenAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: port must be numeric", addr)
	}
	if p < 0 || p > 65535 {
		return fmt.Errorf("invalid listen address %q: port out of range", addr)
	}
	return nil
}

func bindListener(addr string) (net.Listener, error) {
	if err := validateListenAddr(addr); err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %q: %w", addr, err)
	}
	return ln, nil
}

// withCORS adds CORS support for browser clients of the JSON API.
func withCORS(allowedOrigins []string, h http.Handler) http.Handler {
	middleware := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return middleware.Handler(h)
}
