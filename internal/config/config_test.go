package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	for _, key := range []string{"TASKDESK_API_URL", "TASKDESK_TIMEOUT", "TASKDESK_TZ", "TASKDESK_LOG_LEVEL", "TASKSTUB_ADDR", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	assert.Equal(t, "http://localhost:8081/api", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, 48*time.Hour, cfg.CompletedTTL)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":8081", cfg.StubAddr)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestOverridesAndBadDurations(t *testing.T) {
	t.Setenv("TASKDESK_API_URL", "https://tasks.example.com/api")
	t.Setenv("TASKDESK_TIMEOUT", "3s")
	t.Setenv("TASKDESK_COMPLETED_TTL", "soon")
	t.Setenv("TASKDESK_SWEEP_INTERVAL", "-5m")
	t.Setenv("TASKDESK_TZ", "+03:00")
	t.Setenv("TASKSTUB_BCRYPT_COST", "4")

	cfg := FromEnv()
	assert.Equal(t, "https://tasks.example.com/api", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 48*time.Hour, cfg.CompletedTTL)
	assert.Equal(t, time.Hour, cfg.SweepInterval)
	assert.Equal(t, 4, cfg.StubBcryptCost)

	loc, err := cfg.Location()
	require.NoError(t, err)
	_, offset := time.Date(2026, 10, 15, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 3*3600, offset)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKSTUB_SECRET=from-dotenv\nTASKDESK_LOG_FORMAT=json\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("TASKSTUB_SECRET", "")
	t.Setenv("TASKDESK_LOG_FORMAT", "text")
	os.Unsetenv("TASKSTUB_SECRET")

	cfg := Load()
	assert.Equal(t, "from-dotenv", cfg.StubSecret)
	assert.Equal(t, "text", cfg.LogFormat, "environment wins over .env")
}

func TestMustAtoi(t *testing.T) {
	assert.Equal(t, 12, MustAtoi("12", 3))
	assert.Equal(t, 3, MustAtoi("x", 3))
}
