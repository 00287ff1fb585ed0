package getBookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seatBooker/internal/http-server/handlers/seat/getBookings/mocks"
	"seatBooker/internal/lib/logger/handlers/slogdiscard"
	"seatBooker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetBookingsHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	entry := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	now := func() time.Time { return entry.Add(20*time.Minute + 30*time.Second) }

	active := []models.Booking{
		{Seat: 2, Name: "Ravi", Mobile: "1", EntryTime: entry, Duration: 60},
		{Seat: 17, Name: "Asha", Mobile: "2", EntryTime: entry, Duration: 30},
	}

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.BookingsGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Active", mock.Anything).Return(active, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp BookingsResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				require.Len(t, resp.Bookings, 2)
				assert.Equal(t, 2, resp.Bookings[0].Seat)
				assert.Equal(t, 39, resp.Bookings[0].MinutesLeft)
				assert.Equal(t, 9, resp.Bookings[1].MinutesLeft)
				assert.True(t, entry.Add(30*time.Minute).Equal(resp.Bookings[1].ExpiresAt))
			},
		},
		{
			name: "No active bookings",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Active", mock.Anything).Return([]models.Booking{}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"OK","bookings":[]}`, body)
			},
		},
		{
			name: "Storage error",
			mockSetup: func(m *mocks.BookingsGetter) {
				m.On("Active", mock.Anything).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"failed to get bookings"}`, body)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewBookingsGetter(t)
			tc.mockSetup(mockGetter)

			rr := httptest.NewRecorder()
			New(logger, mockGetter, now).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/bookings", nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			tc.checkBody(t, rr.Body.String())
		})
	}
}
