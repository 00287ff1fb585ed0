package getSeat

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"seatBooker/internal/http-server/handlers/seat/getSeat/mocks"
	"seatBooker/internal/lib/logger/handlers/slogdiscard"
	"seatBooker/internal/models"
	"seatBooker/internal/seats"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetSeatHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	booking := &models.Booking{
		Seat:      22,
		Name:      "Meena",
		Mobile:    "9123400000",
		EntryTime: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
		Duration:  45,
	}

	testCases := []struct {
		name           string
		seat           string
		mockSetup      func(m *mocks.SeatGetter)
		expectedStatus int
		expectedBody   string
		checkBody      func(t *testing.T, body string)
	}{
		{
			name: "Occupied seat",
			seat: "22",
			mockSetup: func(m *mocks.SeatGetter) {
				m.On("Lookup", mock.Anything, 22).Return(models.SeatStatus{
					Seat: 22, Row: 2, Col: 1, Occupied: true, Booking: booking, MinutesLeft: 30,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp SeatResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.True(t, resp.Seat.Occupied)
				require.NotNil(t, resp.Seat.Booking)
				assert.Equal(t, "Meena", resp.Seat.Booking.Name)
				assert.Equal(t, 30, resp.Seat.MinutesLeft)
			},
		},
		{
			name: "Free seat",
			seat: "3",
			mockSetup: func(m *mocks.SeatGetter) {
				m.On("Lookup", mock.Anything, 3).Return(models.SeatStatus{Seat: 3, Col: 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","seat":{"seat_number":3,"row":0,"col":2,"occupied":false,"minutes_left":0}}`,
		},
		{
			name:           "Invalid seat format",
			seat:           "abc",
			mockSetup:      func(m *mocks.SeatGetter) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid seat number format"}`,
		},
		{
			name: "Seat out of range",
			seat: "99",
			mockSetup: func(m *mocks.SeatGetter) {
				m.On("Lookup", mock.Anything, 99).Return(models.SeatStatus{}, fmt.Errorf("%w: 99", seats.ErrInvalidSeat))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid seat number"}`,
		},
		{
			name: "Internal server error",
			seat: "3",
			mockSetup: func(m *mocks.SeatGetter) {
				m.On("Lookup", mock.Anything, 3).Return(models.SeatStatus{}, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to get seat"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewSeatGetter(t)
			tc.mockSetup(mockGetter)

			router := chi.NewRouter()
			router.Get("/seats/{seat}", New(logger, mockGetter))

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/seats/"+tc.seat, nil))

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			} else if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
