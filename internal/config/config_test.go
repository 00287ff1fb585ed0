package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "env: prod\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverCSV, cfg.Storage.Driver)
	assert.Equal(t, "./bookings.csv", cfg.Storage.CSVPath)
	assert.Equal(t, 5, cfg.Library.Rows)
	assert.Equal(t, 10, cfg.Library.Cols)
	assert.Equal(t, 50, cfg.Library.Seats())
	assert.Equal(t, time.Second, cfg.Library.SweepInterval)
	assert.Equal(t, 2*time.Second, cfg.Library.RefreshInterval)
	assert.Equal(t, "localhost:8082", cfg.Address)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
env: local
storage:
  driver: postgres
database:
  host: db
  port: 6543
library:
  rows: 2
  cols: 3
  sweep_interval: 500ms
http_server:
  address: ":9000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 6, cfg.Library.Seats())
	assert.Equal(t, 500*time.Millisecond, cfg.Library.SweepInterval)
	assert.Equal(t, ":9000", cfg.Address)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "Zero rows", body: "library:\n  rows: 0\n"},
		{name: "Negative cols", body: "library:\n  cols: -1\n"},
		{name: "Unknown driver", body: "storage:\n  driver: sqlite\n"},
		{name: "Broken yaml", body: "library: [\n"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}
