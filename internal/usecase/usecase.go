// Package usecase holds the crawl, reconcile, read, chat and scheduling
// services. Services depend on domain repositories and source interfaces only.
package usecase

import (
	"errors"

	"github.com/riskibarqy/football-hub/internal/platform/tracing"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrJobRunning            = errors.New("job already running")
)

var spans = tracing.NewScope("football-hub/internal/usecase")
