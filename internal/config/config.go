package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
)

type Config struct {
	Env        string   `yaml:"env" env-default:"local"`
	Storage    Storage  `yaml:"storage"`
	Database   Database `yaml:"database"`
	Library    Library  `yaml:"library"`
	HTTPServer `yaml:"http_server"`
}

type Storage struct {
	Driver  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"csv"`
	CSVPath string `yaml:"csv_path" env:"STORAGE_CSV_PATH" env-default:"./bookings.csv"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"seat_booker"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// Library describes the seat grid and how often it is checked for expired
// bookings.
type Library struct {
	Rows            int           `yaml:"rows" env-default:"5"`
	Cols            int           `yaml:"cols" env-default:"10"`
	SweepInterval   time.Duration `yaml:"sweep_interval" env-default:"1s"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env-default:"2s"`
}

func (l Library) Seats() int {
	return l.Rows * l.Cols
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8082"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// MustLoad reads the config file named by CONFIG_PATH.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Library.Rows <= 0 || c.Library.Cols <= 0 {
		return fmt.Errorf("library grid must have positive rows and cols, got %dx%d", c.Library.Rows, c.Library.Cols)
	}
	if c.Library.SweepInterval <= 0 {
		return errors.New("library.sweep_interval must be positive")
	}
	if c.Library.RefreshInterval <= 0 {
		return errors.New("library.refresh_interval must be positive")
	}

	switch c.Storage.Driver {
	case DriverCSV:
		if c.Storage.CSVPath == "" {
			return errors.New("storage.csv_path is required for the csv driver")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	return nil
}
