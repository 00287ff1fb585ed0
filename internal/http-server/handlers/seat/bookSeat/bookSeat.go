package bookSeat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"seatBooker/internal/lib/api/response"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"
	"seatBooker/internal/seats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type BookingRequest struct {
	Name      string `json:"name" validate:"required"`
	Mobile    string `json:"mobile" validate:"required"`
	Duration  int    `json:"duration_minutes" validate:"required,gt=0,lte=1440"`
	EntryTime string `json:"entry_time,omitempty"`
}

type BookingResponse struct {
	response.Response
	Booking   models.Booking `json:"booking"`
	ExpiresAt time.Time      `json:"expires_at"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SeatBooker
type SeatBooker interface {
	Book(ctx context.Context, req seats.BookRequest) (models.Booking, error)
}

func New(log *slog.Logger, booker SeatBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.seat.bookSeat.New"

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

		var req BookingRequest

		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		booking, err := booker.Book(r.Context(), seats.BookRequest{
			Seat:      seat,
			Name:      req.Name,
			Mobile:    req.Mobile,
			Duration:  req.Duration,
			EntryTime: req.EntryTime,
		})
		if err != nil {
			log.Error("failed to book seat", sl.Err(err))

			switch {
			case errors.Is(err, seats.ErrInvalidSeat):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("invalid seat number"))
			case errors.Is(err, seats.ErrValidation),
				errors.Is(err, seats.ErrInvalidEntryTime),
				errors.Is(err, seats.ErrAlreadyExpired):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			case errors.Is(err, seats.ErrSeatOccupied):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("seat is occupied"))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to book seat"))
			}
			return
		}

		log.Info("seat booked successfully", slog.String("name", booking.Name))

		responseOK(w, r, booking)
	}
}

func responseOK(w http.ResponseWriter, r *http.Request, booking models.Booking) {
	render.JSON(w, r, BookingResponse{
		Response:  response.OK(),
		Booking:   booking,
		ExpiresAt: booking.ExpiresAt(),
	})
}
