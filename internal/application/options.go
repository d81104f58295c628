package application

import (
	"time"

	"github.com/sirupsen/logrus"
)

const defaultCacheTTL = 5 * time.Minute

// Option configures the optional collaborators of a service.
type Option func(*collaborators)

func WithCache(c Cache, ttl time.Duration) Option {
	return func(o *collaborators) {
		o.cache = c
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

func WithEvents(p EventPublisher) Option {
	return func(o *collaborators) { o.events = p }
}

func WithLogger(l *logrus.Logger) Option {
	return func(o *collaborators) { o.logger = l }
}

// WithClock overrides time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *collaborators) { o.now = now }
}

// collaborators holds everything a service may use besides its repositories.
// Every member is optional; failures in cache or events are logged, never returned.
type collaborators struct {
	cache    Cache
	cacheTTL time.Duration
	events   EventPublisher
	logger   *logrus.Logger
	now      func() time.Time
}

func newCollaborators(opts []Option) collaborators {
	o := collaborators{cacheTTL: defaultCacheTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

