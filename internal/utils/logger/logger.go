package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"carnet/internal/app/server/config"
	"carnet/internal/utils/logger/slogpretty"
)

// New returns the logger for env: colored text locally, JSON elsewhere.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel is New with an explicit level overriding the env default.
// An empty or unknown level keeps the default.
func NewWithLevel(env, level string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvLocal:
		log = setupPrettySlog(levelOr(level, slog.LevelDebug))
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(level, slog.LevelDebug)}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelOr(level, slog.LevelInfo)}),
		)
	}

	return log
}

func setupPrettySlog(level ...slog.Level) *slog.Logger {
	lvl := slog.LevelDebug
	if len(level) > 0 {
		lvl = level[0]
	}

	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: lvl},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}

func levelOr(level string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
