package services

import (
	"context"

	"github.com/blogem/campus-admin/faq"
	"github.com/blogem/campus-admin/models"
	"github.com/blogem/campus-admin/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store runs a call against repositories bound to a scoped connection.
// Write wraps the call in a transaction.
type Store interface {
	Read(ctx context.Context, fn func(*repositories.Repositories) error) error
	Write(ctx context.Context, fn func(*repositories.Repositories) error) error
}

// Services holds all service instances
type Services struct {
	Students  StudentService
	Analytics AnalyticsService
	FAQ       FAQService
}

// Option customizes the shared service dependencies
type Option func(*base)

// WithClock overrides the time source used for audit entries and cutoffs
func WithClock(clock models.Clock) Option {
	return func(b *base) { b.clock = clock }
}

// WithRequestIDs overrides the request id generator
func WithRequestIDs(next func() string) Option {
	return func(b *base) { b.newRequestID = next }
}

// NewServices creates and initializes all service instances
func NewServices(store Store, facts *faq.Facts, logger *zap.Logger, opts ...Option) *Services {
	b := &base{
		store:        store,
		logger:       logger,
		clock:        models.NowPKT,
		newRequestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	return &Services{
		Students:  NewStudentService(b),
		Analytics: NewAnalyticsService(b),
		FAQ:       NewFAQService(facts, b),
	}
}
