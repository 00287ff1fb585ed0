// Package csvfile keeps bookings in a single CSV file with the columns
// seat_number, name, mobile, entry_time, duration_minutes.
//
// The whole file is read on every call and rewritten on every mutation, so
// edits made by hand between runs are picked up.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"seatBooker/internal/models"
	"seatBooker/internal/storage"
)

// TimeLayout is the entry_time column format, in the local time zone.
const TimeLayout = "2006-01-02 15:04:05"

var Header = []string{"seat_number", "name", "mobile", "entry_time", "duration_minutes"}

var ErrBadHeader = errors.New("unexpected csv header")

type Storage struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

// New opens the CSV file at path, creating it with a header row if it does
// not exist yet.
func New(path string, log *slog.Logger) (*Storage, error) {
	const op = "storage.csvfile.New"

	s := &Storage{
		path: path,
		log:  log.With(slog.String("storage", "csv"), slog.String("path", path)),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err = s.write(nil); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	default:
		if _, err = s.read(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return s, nil
}

func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) Save(_ context.Context, booking models.Booking) error {
	const op = "storage.csvfile.Save"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := bookings[booking.Seat]; ok {
		return fmt.Errorf("%s: %w", op, storage.ErrSeatOccupied)
	}

	bookings[booking.Seat] = booking

	if err = s.write(bookings); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Get(_ context.Context, seat int) (models.Booking, error) {
	const op = "storage.csvfile.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	booking, ok := bookings[seat]
	if !ok {
		return models.Booking{}, storage.ErrBookingNotFound
	}

	return booking, nil
}

func (s *Storage) List(_ context.Context) ([]models.Booking, error) {
	const op = "storage.csvfile.List"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sorted(bookings), nil
}

func (s *Storage) Delete(_ context.Context, seat int) (models.Booking, error) {
	const op = "storage.csvfile.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	booking, ok := bookings[seat]
	if !ok {
		return models.Booking{}, storage.ErrBookingNotFound
	}

	delete(bookings, seat)

	if err = s.write(bookings); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return booking, nil
}

// DeleteAll truncates the file back to its header row.
func (s *Storage) DeleteAll(_ context.Context) (int, error) {
	const op = "storage.csvfile.DeleteAll"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = s.write(nil); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return len(bookings), nil
}

// DeleteExpired removes every booking whose expiry is at or before now and
// returns the removed bookings ordered by seat.
func (s *Storage) DeleteExpired(_ context.Context, now time.Time) ([]models.Booking, error) {
	const op = "storage.csvfile.DeleteExpired"

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	expired := make(map[int]models.Booking)
	for seat, b := range bookings {
		if b.Expired(now) {
			expired[seat] = b
			delete(bookings, seat)
		}
	}

	if len(expired) == 0 {
		return nil, nil
	}

	if err = s.write(bookings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sorted(expired), nil
}

func (s *Storage) read() (map[int]models.Booking, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	bookings := make(map[int]models.Booking)

	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			s.log.Warn("skipping unreadable row", slog.Int("row", row), slog.String("error", err.Error()))
			continue
		}
		if err != nil {
			return nil, err
		}

		if row == 1 {
			if !equalHeader(record) {
				return nil, fmt.Errorf("%w: %q", ErrBadHeader, strings.Join(record, ","))
			}
			continue
		}

		booking, err := parseRecord(record)
		if err != nil {
			s.log.Warn("skipping malformed row", slog.Int("row", row), slog.String("error", err.Error()))
			continue
		}

		if _, dup := bookings[booking.Seat]; dup {
			s.log.Warn("skipping duplicate seat", slog.Int("row", row), slog.Int("seat", booking.Seat))
			continue
		}

		bookings[booking.Seat] = booking
	}

	return bookings, nil
}

// write replaces the file atomically: rows go to a temp file in the same
// directory which is then renamed over the existing file.
func (s *Storage) write(bookings map[int]models.Booking) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookings-*.csv")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)

	if err = w.Write(Header); err != nil {
		_ = tmp.Close()
		return err
	}

	for _, b := range sorted(bookings) {
		if err = w.Write(formatRecord(b)); err != nil {
			_ = tmp.Close()
			return err
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}

func parseRecord(record []string) (models.Booking, error) {
	if len(record) != len(Header) {
		return models.Booking{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}

	seat, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil || seat <= 0 {
		return models.Booking{}, fmt.Errorf("invalid seat_number %q", record[0])
	}

	name := strings.TrimSpace(record[1])
	mobile := strings.TrimSpace(record[2])
	if name == "" || mobile == "" {
		return models.Booking{}, errors.New("name and mobile are required")
	}

	entry, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(record[3]), time.Local)
	if err != nil {
		return models.Booking{}, fmt.Errorf("invalid entry_time %q", record[3])
	}

	duration, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil || duration <= 0 {
		return models.Booking{}, fmt.Errorf("invalid duration_minutes %q", record[4])
	}

	return models.Booking{
		Seat:      seat,
		Name:      name,
		Mobile:    mobile,
		EntryTime: entry,
		Duration:  duration,
	}, nil
}

func formatRecord(b models.Booking) []string {
	return []string{
		strconv.Itoa(b.Seat),
		b.Name,
		b.Mobile,
		b.EntryTime.In(time.Local).Format(TimeLayout),
		strconv.Itoa(b.Duration),
	}
}

func equalHeader(record []string) bool {
	if len(record) != len(Header) {
		return false
	}
	for i, col := range Header {
		// Excel likes to prepend a BOM.
		if strings.TrimPrefix(strings.TrimSpace(record[i]), "\ufeff") != col {
			return false
		}
	}
	return true
}

func sorted(bookings map[int]models.Booking) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}
