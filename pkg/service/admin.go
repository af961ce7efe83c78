package service

import (
	"context"
	"net"
	"net/http"
	"net/http/pprof"

	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/cloudgov/console/pkg/healthcheck"
	"github.com/go-chi/chi"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AdminServer runs an HTTP server with admin endpoints, such as the
// health check at / and pprof under /debug.
type AdminServer struct {
	logger        *zap.Logger
	adminHostPort string

	hc *healthcheck.HealthCheck

	mux    *chi.Mux
	server *http.Server
}

// NewAdminServer creates a new admin server.
func NewAdminServer(hostPort string) *AdminServer {
	return &AdminServer{
		adminHostPort: hostPort,
		logger:        zap.NewNop(),
		hc:            healthcheck.New(),
		mux:           chi.NewRouter(),
	}
}

// SetLogger attaches a logger once the service has built one.
func (s *AdminServer) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// HC returns the reference to HealthCheck.
func (s *AdminServer) HC() *healthcheck.HealthCheck {
	return s.hc
}

// Serve starts the HTTP server.
func (s *AdminServer) Serve() error {
	l, err := net.Listen("tcp", s.adminHostPort)
	if err != nil {
		s.logger.Error("Admin server failed to listen", zap.Error(err))
		return err
	}
	s.serveWithListener(l)

	s.logger.Info(
		"Admin server started",
		zap.String("http.host-port", l.Addr().String()),
		zap.Stringer("health-status", s.hc.Get()))
	return nil
}

func (s *AdminServer) serveWithListener(l net.Listener) {
	s.mux.Use(chiMiddleware.Recoverer)
	s.mux.Handle("/", s.hc.Handler())
	s.registerPprofHandlers()

	errorLog, _ := zap.NewStdLogAt(s.logger, zapcore.ErrorLevel)

	s.server = &http.Server{
		Handler:  s.mux,
		ErrorLog: errorLog,
	}

	go func() {
		switch err := s.server.Serve(l); err {
		case nil, http.ErrServerClosed:
			// normal exit, nothing to do
		default:
			s.logger.Error("failed to serve", zap.Error(err))
			s.hc.Set(healthcheck.Broken)
		}
	}()
}

func (s *AdminServer) registerPprofHandlers() {
	s.mux.HandleFunc("/debug/pprof/", pprof.Index)
	s.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	s.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	s.mux.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	s.mux.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	s.mux.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	s.mux.Handle("/debug/pprof/block", pprof.Handler("block"))
}

// Close stops the HTTP server
func (s *AdminServer) Close() error {
	return s.server.Shutdown(context.Background())
}
