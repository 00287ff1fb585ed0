package seats

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"seatBooker/internal/lib/clock"
	"seatBooker/internal/lib/logger/handlers/slogdiscard"
	"seatBooker/internal/storage/csvfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)

func newService(t *testing.T) (*Service, *clock.Manual) {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	store, err := csvfile.New(filepath.Join(t.TempDir(), "bookings.csv"), log)
	require.NoError(t, err)

	clk := clock.NewManual(start)

	return New(log, store, clk, 5, 10), clk
}

func TestBook(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	b, err := svc.Book(ctx, BookRequest{Seat: 12, Name: "  Ravi ", Mobile: "9876500000", Duration: 60, EntryTime: "09:15"})
	require.NoError(t, err)

	assert.Equal(t, 12, b.Seat)
	assert.Equal(t, "Ravi", b.Name)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.Local), b.EntryTime)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 15, 0, 0, time.Local), b.ExpiresAt())

	st, err := svc.Lookup(ctx, 12)
	require.NoError(t, err)
	assert.True(t, st.Occupied)
	assert.Equal(t, 45, st.MinutesLeft)
	assert.Equal(t, 1, st.Row)
	assert.Equal(t, 1, st.Col)
}

func TestBookDefaultsEntryTimeToNow(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	b, err := svc.Book(context.Background(), BookRequest{Seat: 1, Name: "Asha", Mobile: "1", Duration: 30})
	require.NoError(t, err)
	assert.True(t, start.Equal(b.EntryTime))
}

func TestBookRejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		req  BookRequest
		err  error
	}{
		{name: "Seat zero", req: BookRequest{Seat: 0, Name: "A", Mobile: "1", Duration: 10}, err: ErrInvalidSeat},
		{name: "Seat past grid", req: BookRequest{Seat: 51, Name: "A", Mobile: "1", Duration: 10}, err: ErrInvalidSeat},
		{name: "Blank name", req: BookRequest{Seat: 1, Name: "   ", Mobile: "1", Duration: 10}, err: ErrValidation},
		{name: "Missing mobile", req: BookRequest{Seat: 1, Name: "A", Duration: 10}, err: ErrValidation},
		{name: "Zero duration", req: BookRequest{Seat: 1, Name: "A", Mobile: "1"}, err: ErrValidation},
		{name: "Negative duration", req: BookRequest{Seat: 1, Name: "A", Mobile: "1", Duration: -5}, err: ErrValidation},
		{name: "Duration over a day", req: BookRequest{Seat: 1, Name: "A", Mobile: "1", Duration: 1441}, err: ErrValidation},
		{name: "Huge duration", req: BookRequest{Seat: 1, Name: "A", Mobile: "1", Duration: 200000000}, err: ErrValidation},
		{name: "Bad entry time", req: BookRequest{Seat: 1, Name: "A", Mobile: "1", Duration: 10, EntryTime: "25:99"}, err: ErrInvalidEntryTime},
		{name: "Already over", req: BookRequest{Seat: 1, Name: "A", Mobile: "1", Duration: 10, EntryTime: "08:00"}, err: ErrAlreadyExpired},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newService(t)

			_, err := svc.Book(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)

	_, err := svc.Book(context.Background(), BookRequest{Seat: 3, Duration: -1})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "Name is required")
	assert.Contains(t, err.Error(), "Mobile is required")
	assert.Contains(t, err.Error(), "Duration must be greater than 0")

	_, err = svc.Book(context.Background(), BookRequest{Seat: 3, Name: "Ravi", Mobile: "1", Duration: 200000000})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Duration must be at most 1440", err.Error())
}

func TestBookAcrossMidnight(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, clk := newService(t)
	clk.Set(time.Date(2025, 3, 10, 0, 10, 0, 0, time.Local))

	b, err := svc.Book(ctx, BookRequest{Seat: 8, Name: "Ravi", Mobile: "1", Duration: 30, EntryTime: "23:50"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 23, 50, 0, 0, time.Local), b.EntryTime)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 20, 0, 0, time.Local), b.ExpiresAt())

	st, err := svc.Lookup(ctx, 8)
	require.NoError(t, err)
	assert.True(t, st.Occupied)
	assert.Equal(t, 10, st.MinutesLeft)

	clk.Advance(10 * time.Minute)

	expired, err := svc.ReleaseExpired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, 8, expired[0].Seat)
}

func TestBookOccupiedSeat(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, clk := newService(t)

	_, err := svc.Book(ctx, BookRequest{Seat: 5, Name: "Ravi", Mobile: "1", Duration: 30})
	require.NoError(t, err)

	_, err = svc.Book(ctx, BookRequest{Seat: 5, Name: "Meena", Mobile: "2", Duration: 30})
	assert.ErrorIs(t, err, ErrSeatOccupied)

	// Once the time is over the seat can be booked even before a sweep.
	clk.Advance(30 * time.Minute)

	b, err := svc.Book(ctx, BookRequest{Seat: 5, Name: "Meena", Mobile: "2", Duration: 30})
	require.NoError(t, err)
	assert.Equal(t, "Meena", b.Name)
}

func TestBookingDisappearsAtExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, clk := newService(t)

	_, err := svc.Book(ctx, BookRequest{Seat: 20, Name: "Ravi", Mobile: "1", Duration: 15})
	require.NoError(t, err)

	clk.Advance(15*time.Minute - time.Second)

	st, err := svc.Lookup(ctx, 20)
	require.NoError(t, err)
	assert.True(t, st.Occupied)
	assert.Equal(t, 0, st.MinutesLeft)

	expired, err := svc.ReleaseExpired(ctx)
	require.NoError(t, err)
	assert.Empty(t, expired)

	clk.Advance(time.Second)

	st, err = svc.Lookup(ctx, 20)
	require.NoError(t, err)
	assert.False(t, st.Occupied)
	assert.Nil(t, st.Booking)

	expired, err = svc.ReleaseExpired(ctx)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, 20, expired[0].Seat)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRelease(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, clk := newService(t)

	_, err := svc.Release(ctx, 4)
	assert.ErrorIs(t, err, ErrSeatFree)

	_, err = svc.Release(ctx, 99)
	assert.ErrorIs(t, err, ErrInvalidSeat)

	_, err = svc.Book(ctx, BookRequest{Seat: 4, Name: "Ravi", Mobile: "1", Duration: 10})
	require.NoError(t, err)

	released, err := svc.Release(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", released.Name)

	st, err := svc.Lookup(ctx, 4)
	require.NoError(t, err)
	assert.False(t, st.Occupied)

	_, err = svc.Book(ctx, BookRequest{Seat: 4, Name: "Asha", Mobile: "1", Duration: 10})
	require.NoError(t, err)
	clk.Advance(10 * time.Minute)

	_, err = svc.Release(ctx, 4)
	assert.ErrorIs(t, err, ErrSeatFree)
}

func TestReleaseAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	for _, seat := range []int{1, 25, 50} {
		_, err := svc.Book(ctx, BookRequest{Seat: seat, Name: "Reader", Mobile: "1", Duration: 60})
		require.NoError(t, err)
	}

	n, err := svc.ReleaseAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestGrid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Book(ctx, BookRequest{Seat: 1, Name: "Ravi", Mobile: "1", Duration: 60})
	require.NoError(t, err)
	_, err = svc.Book(ctx, BookRequest{Seat: 50, Name: "Asha", Mobile: "2", Duration: 5})
	require.NoError(t, err)

	grid, err := svc.Grid(ctx)
	require.NoError(t, err)
	require.Len(t, grid, 50)

	for i, st := range grid {
		assert.Equal(t, i+1, st.Seat)
	}

	assert.True(t, grid[0].Occupied)
	assert.Equal(t, 60, grid[0].MinutesLeft)
	assert.False(t, grid[1].Occupied)
	assert.True(t, grid[49].Occupied)
	assert.Equal(t, 4, grid[49].Row)
	assert.Equal(t, 9, grid[49].Col)
}

func TestParseEntryTime(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 14, 7, 31, 0, time.UTC)

	testCases := []struct {
		value string
		want  time.Time
		err   bool
	}{
		{value: "", want: now},
		{value: "09:05", want: time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)},
		{value: "9:05", want: time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)},
		{value: "14:07", want: time.Date(2025, 3, 10, 14, 7, 0, 0, time.UTC)},
		{value: "14:08", want: time.Date(2025, 3, 9, 14, 8, 0, 0, time.UTC)},
		{value: "23:50", want: time.Date(2025, 3, 9, 23, 50, 0, 0, time.UTC)},
		{value: "2025-03-09 22:00", want: time.Date(2025, 3, 9, 22, 0, 0, 0, time.UTC)},
		{value: "2025-03-09 22:00:15", want: time.Date(2025, 3, 9, 22, 0, 15, 0, time.UTC)},
		{value: "24:00", err: true},
		{value: "noon", err: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEntryTime(tc.value, now)
			if tc.err {
				assert.ErrorIs(t, err, ErrInvalidEntryTime)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestParseEntryTimeAfterMidnight(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 0, 10, 0, 0, time.UTC)

	got, err := ParseEntryTime("23:50", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 23, 50, 0, 0, time.UTC), got)

	got, err = ParseEntryTime("00:10", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)
}
