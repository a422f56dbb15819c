package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/golobby/cast"
	"github.com/joho/godotenv"

	"tax-engine/internal/model"
)

type Config struct {
	Port       string
	RegimeFile string // path or http(s) URL; empty uses the built-in regime
	LogLevel   string
	LogFormat  string // json or text
	Timezone   *time.Location
	// MaxBodyBytes bounds request bodies on the HTTP API.
	MaxBodyBytes int
	// WatchRegime reloads RegimeFile on change while serving; local files only.
	WatchRegime bool
	// DeadlineSchedule is the cron spec for refreshing deadline gauges.
	DeadlineSchedule string
}

const (
	defaultPort     = "8080"
	defaultTimezone = "Asia/Kolkata"
	defaultMaxBody  = 64 << 10
	defaultSchedule = "1 0 * * *"
)

// Load reads the environment, first merging envFile (if present) without
// overriding variables that are already set. A missing default .env is fine;
// an explicitly named file that does not exist is an error.
func Load(envFile string) (Config, error) {
	path := envFile
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, &model.OpError{Op: "config.load_env", Kind: model.KindNotFound, Path: path, Err: err}
		}
	}

	cfg := Config{
		Port:       getenv("PORT", defaultPort),
		RegimeFile: strings.TrimSpace(os.Getenv("TAX_REGIME_FILE")),
		LogLevel:   strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogFormat:  strings.ToLower(getenv("LOG_FORMAT", "json")),
	}

	tz := getenv("DEADLINE_TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, &model.OpError{Op: "config.timezone", Kind: model.KindInvalidConfig, Err: err}
	}
	cfg.Timezone = loc

	n, err := lookup("MAX_BODY_BYTES", defaultMaxBody)
	if err != nil || n <= 0 {
		return Config{}, &model.OpError{
			Op:   "config.max_body_bytes",
			Kind: model.KindInvalidConfig,
			Err:  errors.New("MAX_BODY_BYTES must be a positive integer"),
		}
	}
	cfg.MaxBodyBytes = n

	if cfg.WatchRegime, err = lookup("REGIME_WATCH", false); err != nil {
		return Config{}, &model.OpError{Op: "config.regime_watch", Kind: model.KindInvalidConfig, Err: err}
	}
	cfg.DeadlineSchedule = getenv("DEADLINE_REFRESH_SCHEDULE", defaultSchedule)

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return Config{}, &model.OpError{
			Op:   "config.log_format",
			Kind: model.KindInvalidConfig,
			Err:  errors.New("LOG_FORMAT must be json or text"),
		}
	}

	return cfg, nil
}

// lookup converts a set variable to the type of fallback.
func lookup[T any](key string, fallback T) (T, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := cast.FromType(raw, reflect.TypeOf(fallback))
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return v.(T), nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
