package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/club_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock    func() time.Time
	location *time.Location
}

func newBaseService(opts []Option) BaseService {
	b := BaseService{clock: time.Now, location: time.UTC}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Option configures the shared behaviour of services
type Option func(*BaseService)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(b *BaseService) {
		b.clock = clock
	}
}

// WithLocation sets the time zone that calendar days (sync windows, expected dates) are computed in.
func WithLocation(loc *time.Location) Option {
	return func(b *BaseService) {
		if loc != nil {
			b.location = loc
		}
	}
}

// Now returns the current time in the service location.
func (s *BaseService) Now() time.Time {
	return s.clock().In(s.location)
}

// Today returns midnight of the current day in the service location.
func (s *BaseService) Today() time.Time {
	y, m, d := s.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location)
}

// ParseDate parses a YYYY-MM-DD string as midnight in the service location.
func (s *BaseService) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, s.location)
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
