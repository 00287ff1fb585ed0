package releaseSeat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"seatBooker/internal/lib/api/response"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"
	"seatBooker/internal/seats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type ReleaseResponse struct {
	response.Response
	Released models.Booking `json:"released"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatReleaser
type SeatReleaser interface {
	Release(ctx context.Context, seat int) (models.Booking, error)
}

func New(log *slog.Logger, releaser SeatReleaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.releaseSeat.New"

		log := log.With(slog.String("op", op))

		seatStr := chi.URLParam(r, "seat")
		if seatStr == "" {
			log.Error("seat number is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("seat number is required"))
			return
		}

		seat, err := strconv.Atoi(seatStr)
		if err != nil {
			log.Error("invalid seat number format", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid seat number format"))
			return
		}

		log = log.With(slog.Int("seat", seat))

		released, err := releaser.Release(r.Context(), seat)
		if err != nil {
			log.Error("failed to release seat", sl.Err(err))

			switch {
			case errors.Is(err, seats.ErrInvalidSeat):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid seat number"))
			case errors.Is(err, seats.ErrSeatFree):
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("seat is free"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to release seat"))
			}
			return
		}

		log.Info("seat released", slog.String("name", released.Name))

		render.JSON(w, r, ReleaseResponse{
			Response: response.OK(),
			Released: released,
		})
	}
}
