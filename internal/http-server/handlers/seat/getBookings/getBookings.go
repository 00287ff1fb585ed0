package getBookings

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"seatBooker/internal/lib/api/response"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"

	"github.com/go-chi/render"
)

type BookingView struct {
	models.Booking
	ExpiresAt   time.Time `json:"expires_at"`
	MinutesLeft int       `json:"minutes_left"`
}

type BookingsResponse struct {
	response.Response
	Bookings []BookingView `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingsGetter
type BookingsGetter interface {
	Active(ctx context.Context) ([]models.Booking, error)
}

func New(log *slog.Logger, getter BookingsGetter, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.getBookings.New"

		log := log.With(slog.String("op", op))

		active, err := getter.Active(r.Context())
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get bookings"))
			return
		}

		t := now()
		views := make([]BookingView, 0, len(active))
		for _, b := range active {
			views = append(views, BookingView{
				Booking:     b,
				ExpiresAt:   b.ExpiresAt(),
				MinutesLeft: b.MinutesLeft(t),
			})
		}

		log.Info("bookings successfully received", slog.Int("count", len(views)))

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: views,
		})
	}
}
