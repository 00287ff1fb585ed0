package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"seatBooker/internal/config"
	"seatBooker/internal/models"
	"seatBooker/internal/storage"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type Storage struct {
	DB *sql.DB
}

func InitDB(ctx context.Context, dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(ctx, connStr)
}

// Open connects with a lib/pq connection string or URL and makes sure the
// bookings table exists.
func Open(ctx context.Context, connStr string) (*Storage, error) {
	const op = "storage.postgres.Open"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	query := `
		CREATE TABLE IF NOT EXISTS bookings (
			seat_number      INTEGER PRIMARY KEY CHECK (seat_number > 0),
			name             TEXT NOT NULL,
			mobile           TEXT NOT NULL,
			entry_time       TIMESTAMPTZ NOT NULL,
			duration_minutes INTEGER NOT NULL CHECK (duration_minutes > 0)
		)`

	if _, err = db.ExecContext(ctx, query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to create bookings table: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Save(ctx context.Context, booking models.Booking) error {
	const op = "storage.postgres.Save"

	query := `
		INSERT INTO bookings (seat_number, name, mobile, entry_time, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.DB.ExecContext(ctx, query,
		booking.Seat,
		booking.Name,
		booking.Mobile,
		booking.EntryTime,
		booking.Duration,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrSeatOccupied)
		}
		return fmt.Errorf("%s: failed to save booking: %w", op, err)
	}

	return nil
}

func (s *Storage) Get(ctx context.Context, seat int) (models.Booking, error) {
	const op = "storage.postgres.Get"

	query := `
		SELECT seat_number, name, mobile, entry_time, duration_minutes
		FROM bookings
		WHERE seat_number = $1`

	booking, err := scanBooking(s.DB.QueryRowContext(ctx, query, seat))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("%s: failed to get booking: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) List(ctx context.Context) ([]models.Booking, error) {
	const op = "storage.postgres.List"

	query := `
		SELECT seat_number, name, mobile, entry_time, duration_minutes
		FROM bookings
		ORDER BY seat_number ASC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get bookings: %w", op, err)
	}

	return collect(op, rows)
}

func (s *Storage) Delete(ctx context.Context, seat int) (models.Booking, error) {
	const op = "storage.postgres.Delete"

	query := `
		DELETE FROM bookings
		WHERE seat_number = $1
		RETURNING seat_number, name, mobile, entry_time, duration_minutes`

	booking, err := scanBooking(s.DB.QueryRowContext(ctx, query, seat))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, storage.ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("%s: failed to delete booking: %w", op, err)
	}

	return booking, nil
}

func (s *Storage) DeleteAll(ctx context.Context) (int, error) {
	const op = "storage.postgres.DeleteAll"

	result, err := s.DB.ExecContext(ctx, `DELETE FROM bookings`)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to delete bookings: %w", op, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return int(n), nil
}

func (s *Storage) DeleteExpired(ctx context.Context, now time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.DeleteExpired"

	query := `
		WITH expired AS (
			DELETE FROM bookings
			WHERE entry_time + duration_minutes * INTERVAL '1 minute' <= $1
			RETURNING seat_number, name, mobile, entry_time, duration_minutes
		)
		SELECT seat_number, name, mobile, entry_time, duration_minutes
		FROM expired
		ORDER BY seat_number ASC`

	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to delete expired bookings: %w", op, err)
	}

	return collect(op, rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.Seat,
		&b.Name,
		&b.Mobile,
		&b.EntryTime,
		&b.Duration,
	)
	if err != nil {
		return models.Booking{}, err
	}

	b.EntryTime = b.EntryTime.Local()

	return b, nil
}

func collect(op string, rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan booking: %w", op, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating bookings: %w", op, err)
	}

	return bookings, nil
}
