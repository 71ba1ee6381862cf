package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config opciones para el logger.
type Config struct {
	Env   string // development -> consola legible; production -> JSON
	Level string // trace, debug, info, warn, error
}

// Logger wrapper sobre zerolog para inyección y consistencia.
type Logger struct {
	zl zerolog.Logger
}

// New crea un logger estructurado. En development usa salida legible; en production JSON.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// Info evento de nivel info.
func (l *Logger) Info() *zerolog.Event { return l.zl.Info() }

// Warn evento de nivel warn.
func (l *Logger) Warn() *zerolog.Event { return l.zl.Warn() }

// Error evento de nivel error.
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Debug evento de nivel debug.
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }

// Fatal evento de nivel fatal (termina el proceso).
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
