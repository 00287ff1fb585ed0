package scheduler

import (
	"context"
	"log/slog"
	"time"

	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=ExpiredReleaser
type ExpiredReleaser interface {
	ReleaseExpired(ctx context.Context) ([]models.Booking, error)
}

// Scheduler frees seats whose booked time is over, once per interval.
type Scheduler struct {
	releaser  ExpiredReleaser
	interval  time.Duration
	log       *slog.Logger
	onExpired func([]models.Booking)
}

type Option func(*Scheduler)

// WithOnExpired registers a callback that receives every non-empty batch of
// released bookings. It runs on the scheduler goroutine.
func WithOnExpired(fn func([]models.Booking)) Option {
	return func(s *Scheduler) {
		s.onExpired = fn
	}
}

func New(releaser ExpiredReleaser, interval time.Duration, log *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		releaser: releaser,
		interval: interval,
		log:      log.With(slog.String("component", "scheduler")),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start blocks until ctx is cancelled. A sweep runs right away so seats
// left over from a previous run are freed without waiting a full interval.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("scheduler started", slog.Duration("interval", s.interval))

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.releaser.ReleaseExpired(ctx)
	if err != nil {
		s.log.Error("failed to release expired bookings", sl.Err(err))
		return
	}

	if len(expired) == 0 {
		return
	}

	for _, b := range expired {
		s.log.Info("seat time ended",
			slog.Int("seat", b.Seat),
			slog.String("name", b.Name),
		)
	}

	if s.onExpired != nil {
		s.onExpired(expired)
	}
}
