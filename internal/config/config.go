package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"example.com/taskdesk/internal/duedate"
	"example.com/taskdesk/internal/session"
)

type Config struct {
	Env string

	APIURL        string
	Timeout       time.Duration
	SessionFile   string
	TZ            string
	SweepInterval time.Duration
	CompletedTTL  time.Duration
	WarnWindow    time.Duration
	LogLevel      string
	LogFormat     string

	StubAddr        string
	StubSecret      string
	StubTokenTTL    time.Duration
	StubBcryptCost  int
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getint(key string, def int) int {
	return MustAtoi(os.Getenv(key), def)
}

// Load reads .env from the working directory when present, then the
// environment. Variables already set win over .env entries.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() Config {
	return Config{
		Env:             getenv("APP_ENV", "dev"),
		APIURL:          getenv("TASKDESK_API_URL", "http://localhost:8081/api"),
		Timeout:         getdur("TASKDESK_TIMEOUT", 10*time.Second),
		SessionFile:     getenv("TASKDESK_SESSION_FILE", session.DefaultPath()),
		TZ:              getenv("TASKDESK_TZ", ""),
		SweepInterval:   getdur("TASKDESK_SWEEP_INTERVAL", time.Hour),
		CompletedTTL:    getdur("TASKDESK_COMPLETED_TTL", 48*time.Hour),
		WarnWindow:      getdur("TASKDESK_WARN_WINDOW", time.Hour),
		LogLevel:        getenv("TASKDESK_LOG_LEVEL", "warn"),
		LogFormat:       getenv("TASKDESK_LOG_FORMAT", "text"),
		StubAddr:        getenv("TASKSTUB_ADDR", ":8081"),
		StubSecret:      getenv("TASKSTUB_SECRET", "dev-secret"),
		StubTokenTTL:    getdur("TASKSTUB_TOKEN_TTL", 24*time.Hour),
		StubBcryptCost:  getint("TASKSTUB_BCRYPT_COST", 0),
		ShutdownTimeout: getdur("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// Location resolves TZ; empty means the machine's local zone.
func (c Config) Location() (*time.Location, error) {
	return duedate.LoadLocation(c.TZ)
}

func MustAtoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
