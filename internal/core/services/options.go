package services

import portssvc "github.com/SscSPs/pocket_ledger/internal/core/ports/services"

// ServiceOption is a functional option for configuring the shared parts of a service
type ServiceOption func(*BaseService)

// WithClock replaces time.Now.
func WithClock(clock Clock) ServiceOption {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

// WithDispatcher sets where aggregate tasks go after a ledger mutation commits.
func WithDispatcher(d portssvc.AggregateDispatcher) ServiceOption {
	return func(s *BaseService) {
		s.Dispatcher = d
	}
}
