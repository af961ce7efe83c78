package service

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/cloudgov/console/pkg/healthcheck"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Service is the base CloudGov backend service with shared functionality
// such as logging and the admin server.
type Service struct {
	Logger *zap.SugaredLogger

	// Admin is the admin server that hosts the health check and pprof
	// endpoints.
	Admin *AdminServer

	signalsChannel  chan os.Signal
	hcStatusChannel chan healthcheck.Status
}

func NewService(adminPort int) *Service {
	signalsChannel := make(chan os.Signal, 1)
	signal.Notify(signalsChannel, os.Interrupt, syscall.SIGTERM)

	hcStatusChannel := make(chan healthcheck.Status)
	return &Service{
		Admin:           NewAdminServer(portToHostPort(adminPort)),
		signalsChannel:  signalsChannel,
		hcStatusChannel: hcStatusChannel,
	}
}

func (s *Service) Start() error {
	logProd, err := zap.NewProduction()
	if err != nil {
		return err
	}
	s.Logger = logProd.Sugar()
	s.Admin.SetLogger(logProd)

	if err := s.Admin.Serve(); err != nil {
		return errors.Wrap(err, "starting admin server")
	}

	return nil
}

// SetHealth reports a health status change to the admin server.
func (s *Service) SetHealth(status healthcheck.Status) {
	s.hcStatusChannel <- status
}

// RunAndThen marks the service ready, blocks until a shutdown signal
// arrives, then runs the provided shutdown function.
func (s *Service) RunAndThen(shutdown func()) {
	s.Admin.HC().Set(healthcheck.Ready)
statusLoop:
	for {
		select {
		case status := <-s.hcStatusChannel:
			s.Admin.HC().Set(status)
		case <-s.signalsChannel:
			break statusLoop
		}
	}

	s.Logger.Info("shutting down")

	if shutdown != nil {
		shutdown()
	}

	s.Logger.Info("shutdown complete")
}

// portToHostPort converts the port into a host:port address string
func portToHostPort(port int) string {
	return ":" + strconv.Itoa(port)
}
