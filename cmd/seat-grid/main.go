package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"seatBooker/internal/app"
	"seatBooker/internal/config"
	"seatBooker/internal/lib/clock"
	"seatBooker/internal/lib/logger/sl"
	"seatBooker/internal/models"
	"seatBooker/internal/scheduler"
	"seatBooker/internal/seats"
	"seatBooker/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

func main() {
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "config/local.yaml"
	}

	var (
		configPath string
		logPath    string
	)
	pflag.StringVarP(&configPath, "config", "c", defaultConfig, "path to the YAML config file")
	pflag.StringVar(&logPath, "log-file", "seat-grid.log", "file the log is written to while the grid owns the terminal")
	pflag.Parse()

	if err := run(configPath, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "seat-grid: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	log := app.SetupLogger(cfg.Env, logFile)
	log.Info("Starting seat grid", slog.String("env", cfg.Env), slog.Int("seats", cfg.Library.Seats()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store, closeStore, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("failed to close storage", sl.Err(err))
		}
	}()

	service := seats.New(log, store, clock.NewSystem(), cfg.Library.Rows, cfg.Library.Cols)

	expired := make(chan []models.Booking, 16)
	sweeper := scheduler.New(service, cfg.Library.SweepInterval, log,
		scheduler.WithOnExpired(func(batch []models.Booking) {
			select {
			case expired <- batch:
			default:
				log.Warn("dropped expiry notice, grid is not keeping up", slog.Int("count", len(batch)))
			}
		}),
	)
	go sweeper.Start(ctx)

	model := tui.NewModel(ctx, service, cfg.Library.Rows, cfg.Library.Cols, cfg.Library.RefreshInterval, expired)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error("seat grid stopped", sl.Err(err))
		return err
	}

	log.Info("seat grid stopped")

	return nil
}
