package resetSeats

import (
	"context"
	"log/slog"
	"net/http"

	"seatBooker/internal/lib/api/response"
	"seatBooker/internal/lib/logger/sl"

	"github.com/go-chi/render"
)

type ResetResponse struct {
	response.Response
	Released int `json:"released"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatsResetter
type SeatsResetter interface {
	ReleaseAll(ctx context.Context) (int, error)
}

func New(log *slog.Logger, resetter SeatsResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.resetSeats.New"

		log := log.With(slog.String("op", op))

		n, err := resetter.ReleaseAll(r.Context())
		if err != nil {
			log.Error("failed to reset seats", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reset seats"))
			return
		}

		log.Info("all seats reset", slog.Int("released", n))

		render.JSON(w, r, ResetResponse{
			Response: response.OK(),
			Released: n,
		})
	}
}
