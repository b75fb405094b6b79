package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	globalLogger *slog.Logger
	isTerminal   = term.IsTerminal
)

func init() {
	Init(LevelInfo, nil)
}

// Init points the global logger at stderr. When logFile is set, every record
// is also written to it as JSON lines and console colors are turned off.
func Init(level slog.Level, logFile io.Writer) {
	color := logFile == nil && isTerminal(int(os.Stderr.Fd()))
	InitWriters(level, os.Stderr, logFile, color)
}

// InitWriters is Init with an explicit console writer.
func InitWriters(level slog.Level, console, logFile io.Writer, color bool) {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: RedactAttr}

	var h slog.Handler = NewPrettyHandler(console, opts, color)
	if logFile != nil {
		h = fanout{h, slog.NewJSONHandler(logFile, opts)}
	}
	globalLogger = slog.New(h)
	slog.SetDefault(globalLogger)
}

// ParseLevel maps a config or flag value to a level. Unknown values mean Info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	}
	return LevelInfo
}

// Logger returns the global logger for callers that want to attach attributes.
func Logger() *slog.Logger { return globalLogger }

func Debug(msg string, args ...any) { globalLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { globalLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { globalLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { globalLogger.Error(msg, args...) }
