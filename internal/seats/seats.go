// Package seats implements booking rules for the library seat grid: seat
// range checks, input validation, the one-booking-per-seat rule and release
// of bookings whose time is over.
package seats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"seatBooker/internal/lib/clock"
	"seatBooker/internal/models"
	"seatBooker/internal/storage"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidSeat      = errors.New("invalid seat number")
	ErrSeatOccupied     = errors.New("seat is occupied")
	ErrSeatFree         = errors.New("seat is free")
	ErrAlreadyExpired   = errors.New("booking would already be over")
	ErrInvalidEntryTime = errors.New("invalid entry time, use HH:MM (24h)")
	ErrValidation       = errors.New("validation error")
)

// ValidationError carries the failed field checks of a BookRequest.
type ValidationError struct {
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, fe := range e.Errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gt":
			msgs = append(msgs, fe.Field()+" must be greater than "+fe.Param())
		case "max":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param()+" characters")
		case "lte":
			msgs = append(msgs, fe.Field()+" must be at most "+fe.Param())
		default:
			msgs = append(msgs, fe.Field()+" is not valid")
		}
	}
	return strings.Join(msgs, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Store persists bookings. Implemented by storage/csvfile and
// storage/postgres.
type Store interface {
	Save(ctx context.Context, booking models.Booking) error
	Get(ctx context.Context, seat int) (models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	Delete(ctx context.Context, seat int) (models.Booking, error)
	DeleteAll(ctx context.Context) (int, error)
	DeleteExpired(ctx context.Context, now time.Time) ([]models.Booking, error)
}

type BookRequest struct {
	Seat     int
	Name     string `validate:"required,max=64"`
	Mobile   string `validate:"required,max=20"`
	Duration int    `validate:"required,gt=0,lte=1440"`
	// EntryTime is "HH:MM" (the latest such time not after now), or
	// "YYYY-MM-DD HH:MM". Empty means now.
	EntryTime string
}

type Service struct {
	log      *slog.Logger
	store    Store
	clock    clock.Clock
	rows     int
	cols     int
	validate *validator.Validate
}

func New(log *slog.Logger, store Store, clk clock.Clock, rows, cols int) *Service {
	return &Service{
		log:      log,
		store:    store,
		clock:    clk,
		rows:     rows,
		cols:     cols,
		validate: validator.New(),
	}
}

// Seats returns the number of seats on the grid.
func (s *Service) Seats() int {
	return s.rows * s.cols
}

func (s *Service) Rows() int { return s.rows }

func (s *Service) Cols() int { return s.cols }

func (s *Service) Now() time.Time {
	return s.clock.Now()
}

func (s *Service) Book(ctx context.Context, req BookRequest) (models.Booking, error) {
	const op = "seats.Book"

	if err := s.checkSeat(req.Seat); err != nil {
		return models.Booking{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if err := s.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			return models.Booking{}, &ValidationError{Errs: validateErr}
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()

	entry, err := ParseEntryTime(req.EntryTime, now)
	if err != nil {
		return models.Booking{}, err
	}

	booking := models.Booking{
		Seat:      req.Seat,
		Name:      req.Name,
		Mobile:    req.Mobile,
		EntryTime: entry,
		Duration:  req.Duration,
	}

	if booking.Expired(now) {
		return models.Booking{}, ErrAlreadyExpired
	}

	existing, err := s.store.Get(ctx, req.Seat)
	switch {
	case err == nil && !existing.Expired(now):
		return models.Booking{}, ErrSeatOccupied
	case err == nil:
		// Time is over but the sweeper has not run yet.
		if _, err = s.store.Delete(ctx, req.Seat); err != nil && !errors.Is(err, storage.ErrBookingNotFound) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, err)
		}
	case !errors.Is(err, storage.ErrBookingNotFound):
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.store.Save(ctx, booking); err != nil {
		if errors.Is(err, storage.ErrSeatOccupied) {
			return models.Booking{}, ErrSeatOccupied
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("seat booked",
		slog.String("op", op),
		slog.Int("seat", booking.Seat),
		slog.String("name", booking.Name),
		slog.Int("duration_minutes", booking.Duration),
	)

	return booking, nil
}

// Release frees a seat before its time is over.
func (s *Service) Release(ctx context.Context, seat int) (models.Booking, error) {
	const op = "seats.Release"

	if err := s.checkSeat(seat); err != nil {
		return models.Booking{}, err
	}

	existing, err := s.store.Get(ctx, seat)
	if errors.Is(err, storage.ErrBookingNotFound) {
		return models.Booking{}, ErrSeatFree
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	if existing.Expired(s.clock.Now()) {
		return models.Booking{}, ErrSeatFree
	}

	released, err := s.store.Delete(ctx, seat)
	if errors.Is(err, storage.ErrBookingNotFound) {
		return models.Booking{}, ErrSeatFree
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("seat released", slog.String("op", op), slog.Int("seat", seat))

	return released, nil
}

func (s *Service) ReleaseAll(ctx context.Context) (int, error) {
	const op = "seats.ReleaseAll"

	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("all seats released", slog.String("op", op), slog.Int("count", n))

	return n, nil
}

// ReleaseExpired deletes every booking whose time is over and returns them.
func (s *Service) ReleaseExpired(ctx context.Context) ([]models.Booking, error) {
	const op = "seats.ReleaseExpired"

	expired, err := s.store.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return expired, nil
}

func (s *Service) Lookup(ctx context.Context, seat int) (models.SeatStatus, error) {
	const op = "seats.Lookup"

	if err := s.checkSeat(seat); err != nil {
		return models.SeatStatus{}, err
	}

	b, err := s.store.Get(ctx, seat)
	if errors.Is(err, storage.ErrBookingNotFound) {
		return s.status(seat, nil, s.clock.Now()), nil
	}
	if err != nil {
		return models.SeatStatus{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.status(seat, &b, s.clock.Now()), nil
}

// Grid returns the status of every seat, ordered by seat number.
func (s *Service) Grid(ctx context.Context) ([]models.SeatStatus, error) {
	const op = "seats.Grid"

	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bySeat := make(map[int]models.Booking, len(bookings))
	for _, b := range bookings {
		bySeat[b.Seat] = b
	}

	now := s.clock.Now()
	grid := make([]models.SeatStatus, 0, s.Seats())
	for seat := 1; seat <= s.Seats(); seat++ {
		if b, ok := bySeat[seat]; ok {
			grid = append(grid, s.status(seat, &b, now))
			continue
		}
		grid = append(grid, s.status(seat, nil, now))
	}

	return grid, nil
}

// Active returns bookings whose time is not over yet, ordered by seat.
func (s *Service) Active(ctx context.Context) ([]models.Booking, error) {
	const op = "seats.Active"

	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	active := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.Expired(now) {
			active = append(active, b)
		}
	}

	return active, nil
}

func (s *Service) checkSeat(seat int) error {
	if seat < 1 || seat > s.Seats() {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidSeat, seat, s.Seats())
	}
	return nil
}

func (s *Service) status(seat int, b *models.Booking, now time.Time) models.SeatStatus {
	st := models.SeatStatus{
		Seat: seat,
		Row:  (seat - 1) / s.cols,
		Col:  (seat - 1) % s.cols,
	}

	if b != nil && !b.Expired(now) {
		st.Occupied = true
		st.Booking = b
		st.MinutesLeft = b.MinutesLeft(now)
	}

	return st
}

var entryLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// ParseEntryTime resolves a form value against now. "HH:MM" means the latest
// such clock time not after now, in now's location, so a time later than now
// belongs to yesterday. Empty means now.
func ParseEntryTime(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Truncate(time.Second), nil
	}

	if t, err := time.Parse("15:04", value); err == nil {
		entry := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if entry.After(now) {
			entry = time.Date(now.Year(), now.Month(), now.Day()-1, t.Hour(), t.Minute(), 0, 0, now.Location())
		}
		return entry, nil
	}

	for _, layout := range entryLayouts {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidEntryTime
}
