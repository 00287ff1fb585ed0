// Package app holds the start-up wiring shared by the seat-booker server and
// the seat-grid terminal UI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"seatBooker/internal/config"
	"seatBooker/internal/lib/logger/handlers/slogpretty"
	"seatBooker/internal/seats"
	"seatBooker/internal/storage/csvfile"
	"seatBooker/internal/storage/postgres"

	"github.com/mattn/go-isatty"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

func SetupLogger(env string, out io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case EnvLocal:
		log = setupPrettySlog(out)
	case EnvDev:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog(out io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
		NoColor: !isTerminal(out),
	}

	h := opts.NewPrettyHandler(out)

	return slog.New(h)
}

// isTerminal reports whether out is a terminal. Log files and buffers get
// no color codes.
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// OpenStore opens the booking store selected by cfg.Storage.Driver. The
// returned close func is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (seats.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		storage, err := postgres.InitDB(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres storage", slog.String("host", cfg.Database.Host), slog.String("dbname", cfg.Database.DBName))
		return storage, storage.Close, nil
	case config.DriverCSV:
		storage, err := csvfile.New(cfg.Storage.CSVPath, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using csv storage", slog.String("path", cfg.Storage.CSVPath))
		return storage, func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
