package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tpodg/startproxy/internal/config"
	"github.com/tpodg/startproxy/internal/tunnel"
)

type App struct {
	Logger   *slog.Logger
	Config   *config.Config
	Launcher *tunnel.Launcher
}

// New wires the logger and launcher from cfg. Logs go to stderr; stdout
// carries the JSON result.
func New(cfg *config.Config) *App {
	return newWithLogOutput(cfg, os.Stderr)
}

func newWithLogOutput(cfg *config.Config, w io.Writer) *App {
	logger := newLogger(cfg, w)

	return &App{
		Logger:   logger,
		Config:   cfg,
		Launcher: tunnel.NewLauncher(cfg.SSHBinary, logger),
	}
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelWarn
	}
	return level
}
