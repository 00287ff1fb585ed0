package getSeat

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

type SeatResponse struct {
	response.Response
	Seat models.SeatStatus `json:"seat"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatGetter
type SeatGetter interface {
	Lookup(ctx context.Context, seat int) (models.SeatStatus, error)
}

func New(log *slog.Logger, getter SeatGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.getSeat.New"

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

		status, err := getter.Lookup(r.Context(), seat)
		if err != nil {
			log.Error("failed to look up seat", sl.Err(err), slog.Int("seat", seat))

			if errors.Is(err, seats.ErrInvalidSeat) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid seat number"))
				return
			}

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get seat"))
			return
		}

		log.Info("seat info successfully received", slog.Int("seat", seat), slog.Bool("occupied", status.Occupied))

		render.JSON(w, r, SeatResponse{
			Response: response.OK(),
			Seat:     status,
		})
	}
}
