package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-timeline-backend/internal/reservation"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "DB_DSN", "REDIS_ADDR", "REDIS_DB", "ROOM_CACHE_TTL", "RABBITMQ_URL", "ROLLOVER_SCHEDULE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.RoomCacheTTL)
	assert.Equal(t, "@every 1m", cfg.RolloverSchedule)
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("ROOM_CACHE_TTL", "30s")
	t.Setenv("ROLLOVER_SCHEDULE", "0 0 * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.RoomCacheTTL)
	assert.Equal(t, "0 0 * * *", cfg.RolloverSchedule)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())

	t.Run("REDIS_DB", func(t *testing.T) {
		t.Setenv("REDIS_DB", "one")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("ROOM_CACHE_TTL", func(t *testing.T) {
		t.Setenv("ROOM_CACHE_TTL", "soon")
		_, err := Load()
		assert.Error(t, err)
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadLayout(t *testing.T) {
	t.Run("Empty path uses defaults", func(t *testing.T) {
		layout, err := LoadLayout("")
		require.NoError(t, err)
		assert.Equal(t, reservation.DefaultLayout(), layout)
	})

	t.Run("Partial file keeps defaults", func(t *testing.T) {
		layout, err := LoadLayout(writeFile(t, "row_height: 40\ncheck_in_hour: 15\n"))
		require.NoError(t, err)
		assert.Equal(t, 40.0, layout.RowHeight)
		assert.Equal(t, 15, layout.CheckInHour)
		assert.Equal(t, 11, layout.CheckOutHour)
		assert.Equal(t, 5.0, layout.TopInset)
		assert.Equal(t, 10.0, layout.MinSelectionWidth)
	})

	t.Run("Invalid values", func(t *testing.T) {
		_, err := LoadLayout(writeFile(t, "row_height: 0\n"))
		assert.Error(t, err)

		_, err = LoadLayout(writeFile(t, "check_out_hour: 25\n"))
		assert.Error(t, err)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		_, err := LoadLayout(writeFile(t, "row_height: [\n"))
		assert.Error(t, err)
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
