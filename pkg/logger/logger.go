// pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	Log = zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	// Packages log through zerolog/log; keep it on the same writer.
	log.Logger = Log
}

// SetLevel sets the log level. Gin style modes are accepted as aliases so the
// server mode can drive verbosity directly.
func SetLevel(levelStr string) {
	switch levelStr {
	case "release":
		levelStr = "info"
	case "test":
		levelStr = "warn"
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
	log.Logger = Log
}

// UseJSON switches the global logger to plain JSON output, which is what
// log collectors want in production.
func UseJSON() {
	Log = zerolog.New(os.Stdout).
		Level(Log.GetLevel()).
		With().
		Timestamp().
		Caller().
		Logger()
	log.Logger = Log
}
