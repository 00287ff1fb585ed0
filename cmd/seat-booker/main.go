package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatBooker/internal/app"
	"seatBooker/internal/config"
	"seatBooker/internal/http-server/handlers/seat/bookSeat"
	"seatBooker/internal/http-server/handlers/seat/getBookings"
	"seatBooker/internal/http-server/handlers/seat/getSeat"
	"seatBooker/internal/http-server/handlers/seat/getSeats"
	"seatBooker/internal/http-server/handlers/seat/releaseSeat"
	"seatBooker/internal/http-server/handlers/seat/resetSeats"
	"seatBooker/internal/http-server/middleware/mwlogger"
	"seatBooker/internal/lib/clock"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/scheduler"
	"seatBooker/internal/seats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.MustLoad()

	log := app.SetupLogger(cfg.Env, os.Stdout)

	log.Info("Starting seat booker", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	service := seats.New(log, store, clock.NewSystem(), cfg.Library.Rows, cfg.Library.Cols)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Get("/seats", getSeats.New(log, service))
	router.Delete("/seats", resetSeats.New(log, service))
	router.Get("/seats/{seat}", getSeat.New(log, service))
	router.Post("/seats/{seat}/book", bookSeat.New(log, service))
	router.Delete("/seats/{seat}", releaseSeat.New(log, service))
	router.Get("/bookings", getBookings.New(log, service, service.Now))

	sweeper := scheduler.New(service, cfg.Library.SweepInterval, log)
	go sweeper.Start(ctx)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("application stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = closeStore(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}
