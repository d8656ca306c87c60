package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/league-portal/internal/config"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
)

// Stack holds every observability component started for the process.
type Stack struct {
	logger          *logging.Logger
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprof           *pprofServer
}

// Start brings up tracing, continuous profiling and the pprof listener
// according to cfg. Disabled components cost nothing at shutdown.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("observability")

	s := &Stack{logger: logger}

	shutdownTracing, err := initTracing(cfg, logger)
	if err != nil {
		return nil, err
	}
	s.shutdownTracing = shutdownTracing

	stopProfiler, err := initPyroscope(cfg, logger)
	if err != nil {
		_ = s.shutdownTracing(context.Background())
		return nil, err
	}
	s.stopProfiler = stopProfiler

	pprof, err := startPprofServer(cfg, logger)
	if err != nil {
		_ = s.stopProfiler()
		_ = s.shutdownTracing(context.Background())
		return nil, err
	}
	s.pprof = pprof

	return s, nil
}

// Shutdown stops components in reverse start order and reports every failure.
func (s *Stack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}

	var errs []error
	if err := s.pprof.stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.stopProfiler != nil {
		if err := s.stopProfiler(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.shutdownTracing != nil {
		if err := s.shutdownTracing(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		s.logger.ErrorContext(ctx, "observability shutdown failed", "error", err)
	}
	return err
}
