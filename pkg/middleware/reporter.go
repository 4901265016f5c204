package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// Report describes one failed request worth tracking.
type Report struct {
	Status  int
	Method  string
	Path    string
	UserID  string
	Err     error
	Panic   interface{}
	Request *http.Request
}

func (r Report) message() string {
	if r.Panic != nil {
		return fmt.Sprintf("panic: %v", r.Panic)
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return fmt.Sprintf("%s %s returned %d", r.Method, r.Path, r.Status)
}

type Reporter interface {
	Report(ctx context.Context, r Report)
	Flush(timeout time.Duration)
}

// NewReporter sends to Sentry when dsn is set, otherwise only logs.
func NewReporter(dsn, environment, service string) (Reporter, error) {
	if dsn == "" {
		return LogReporter{}, nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		ServerName:  service,
	})
	if err != nil {
		return LogReporter{}, err
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

type SentryReporter struct {
	hub *sentry.Hub
}

func (s *SentryReporter) Report(ctx context.Context, r Report) {
	hub := s.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("status", fmt.Sprint(r.Status))
		scope.SetTag("path", r.Path)
		if r.UserID != "" {
			scope.SetUser(sentry.User{ID: r.UserID})
		}
		if r.Request != nil {
			scope.SetRequest(r.Request)
		}
		if r.Err != nil {
			hub.CaptureException(r.Err)
			return
		}
		hub.CaptureMessage(r.message())
	})
	LogReporter{}.Report(ctx, r)
}

func (s *SentryReporter) Flush(timeout time.Duration) {
	s.hub.Flush(timeout)
}

// LogReporter writes reports through logrus.
type LogReporter struct{}

func (LogReporter) Report(ctx context.Context, r Report) {
	entry := logrus.WithContext(ctx).
		WithField("status", r.Status).
		WithField("method", r.Method).
		WithField("path", r.Path)
	if r.UserID != "" {
		entry = entry.WithField("user_id", r.UserID)
	}
	entry.Errorf("error_%d: %s", r.Status, r.message())
}

func (LogReporter) Flush(time.Duration) {}
