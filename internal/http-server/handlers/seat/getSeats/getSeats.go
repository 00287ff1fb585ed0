package getSeats

import (
	"context"
	"log/slog"
	"net/http"

	"seatBooker/internal/lib/api/response"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"

	"github.com/go-chi/render"
)

type SeatsResponse struct {
	response.Response
	Seats []models.SeatStatus `json:"seats"`
	Free  int                 `json:"free"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatsGetter
type SeatsGetter interface {
	Grid(ctx context.Context) ([]models.SeatStatus, error)
}

func New(log *slog.Logger, getter SeatsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.getSeats.New"

		log := log.With(slog.String("op", op))

		grid, err := getter.Grid(r.Context())
		if err != nil {
			log.Error("failed to get seats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get seats"))
			return
		}

		free := 0
		for _, st := range grid {
			if !st.Occupied {
				free++
			}
		}

		log.Info("seats successfully received", slog.Int("count", len(grid)), slog.Int("free", free))

		render.JSON(w, r, SeatsResponse{
			Response: response.OK(),
			Seats:    grid,
			Free:     free,
		})
	}
}
