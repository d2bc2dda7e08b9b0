// Package logging builds the process slog.Logger: human-readable text in dev,
// zap JSON in stage and prod.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Env string

const (
	EnvDev   Env = "dev"
	EnvStage Env = "stage"
	EnvProd  Env = "prod"
)

func ParseEnv(s string) Env {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return EnvProd
	case "stage", "staging":
		return EnvStage
	default:
		return EnvDev
	}
}

type Config struct {
	Service string
	Version string
	Env     Env
	Level   slog.Level

	// Output defaults to stdout.
	Output io.Writer
}

// New returns a logger carrying service and version on every record and
// installs it as slog's default.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Service == "" {
		cfg.Service = "timesync"
	}

	var h slog.Handler
	if cfg.Env == EnvStage || cfg.Env == EnvProd {
		h = newZapHandler(cfg)
	} else {
		h = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: cfg.Level})
	}

	l := slog.New(h).With("service", cfg.Service, "version", cfg.Version, "env", string(cfg.Env))
	slog.SetDefault(l)
	return l
}

func newZapHandler(cfg Config) slog.Handler {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(cfg.Output), toZapLevel(cfg.Level))
	z := zap.New(core, zap.AddCaller())
	return slogzap.Option{Level: cfg.Level, Logger: z}.NewZapHandler()
}

func toZapLevel(lvl slog.Level) zapcore.Level {
	switch {
	case lvl <= slog.LevelDebug:
		return zapcore.DebugLevel
	case lvl <= slog.LevelInfo:
		return zapcore.InfoLevel
	case lvl <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Discard is a logger for tests.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }
