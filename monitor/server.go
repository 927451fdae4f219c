// Package monitor exposes the metrics of the library over HTTP and keeps the
// gauges of the state of the chain up to date by polling the endpoint.
package monitor

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"golang.org/x/xerrors"
)

type key int

const (
	requestIDKey key = 0
)

const shutdownTimeout = 10 * time.Second

// Server is an HTTP server that logs the requests and tags them with a
// request identifier.
type Server struct {
	sync.Mutex
	mux        *http.ServeMux
	server     *http.Server
	logger     zerolog.Logger
	listenAddr string
	ln         net.Listener
}

// ServerOption is the type of option to configure a server.
type ServerOption func(*Server)

// WithLogger sets the logger of the server.
func WithLogger(logger zerolog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server that will listen on the address. An empty port
// selects a random one.
func NewServer(listenAddr string, opts ...ServerOption) *Server {
	s := &Server{
		mux:        http.NewServeMux(),
		logger:     zilliqa.Logger.With().Timestamp().Str("role", "monitor").Logger(),
		listenAddr: listenAddr,
	}

	for _, opt := range opts {
		opt(s)
	}

	nextRequestID := func() string {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}

	s.server = &http.Server{
		Handler:           tracing(nextRequestID)(logging(s.logger)(s.mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start opens the listener and serves the requests in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return xerrors.Errorf("failed to listen on '%s': %v", s.listenAddr, err)
	}

	s.Lock()
	s.ln = ln
	s.Unlock()

	s.logger.Info().Msgf("server is ready to handle requests at http://%s", ln.Addr())

	go func() {
		err := s.server.Serve(ln)
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	return nil
}

// GetAddr returns the address of the listener, or nil if the server is not
// started.
func (s *Server) GetAddr() net.Addr {
	s.Lock()
	defer s.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.logger.Info().Msg("server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.server.SetKeepAlivesEnabled(false)

	err := s.server.Shutdown(ctx)
	if err != nil {
		return xerrors.Errorf("failed to shutdown: %v", err)
	}

	s.logger.Info().Msg("server stopped")

	return nil
}

// RegisterHandler registers the handler of the path. It panics if the path is
// already registered.
func (s *Server) RegisterHandler(path string, handler http.Handler) {
	s.mux.Handle(path, handler)
}

// logging is a utility function that logs the http server events
func logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				requestID, ok := r.Context().Value(requestIDKey).(string)
				if !ok {
					requestID = "unknown"
				}
				logger.Debug().Str("requestID", requestID).
					Str("method", r.Method).
					Str("url", r.URL.Path).
					Str("remoteAddr", r.RemoteAddr).
					Str("agent", r.UserAgent()).Msg("request")
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// tracing is a utility function that adds header tracing
func tracing(nextRequestID func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = nextRequestID()
			}
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			w.Header().Set("X-Request-Id", requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
