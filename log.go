package pickit

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

var (
	loggerOnce sync.Once
	loggerMu   sync.RWMutex
	logger     *log.Logger
)

// RunID identifies this process in log records and screenshot names.
var RunID = uuid.NewString()

// Logger returns the package logger, creating the default one on first use.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if logger == nil {
			logger = newLogger(os.Stderr)
		}
	})
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the package logger. Passing nil restores the default.
func SetLogger(l *log.Logger) {
	loggerOnce.Do(func() {})
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = newLogger(os.Stderr)
	}
	logger = l
}

// SetLogLevel parses level ("debug", "info", "warn", "error") and applies it.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger().SetLevel(lvl)
	return nil
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "pickit",
	}).With("run", RunID[:8])
}

func logDebug(msg string, kv ...any) { Logger().Debug(msg, kv...) }
func logInfo(msg string, kv ...any)  { Logger().Info(msg, kv...) }
func logWarn(msg string, kv ...any)  { Logger().Warn(msg, kv...) }
func logError(msg string, kv ...any) { Logger().Error(msg, kv...) }
