// Package logger holds the process-wide logger of the newtype tools.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger. It discards everything until [Initialize] is
// called, so library code can log unconditionally.
var Logger *zap.SugaredLogger

func init() {
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger writing to stderr. Stdout is kept for
// the tool's own output. Only warnings and errors are logged unless verbose
// is set.
func Initialize(verbose bool) error {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	config.DisableCaller = !verbose
	config.EncoderConfig.TimeKey = ""

	zapLogger, err := config.Build()
	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// Set replaces the global logger and returns a function restoring the
// previous one.
func Set(l *zap.Logger) (restore func()) {
	prev := Logger
	Logger = l.Sugar()
	return func() { Logger = prev }
}

// Sync flushes the global logger. Errors from syncing a terminal are ignored.
func Sync() {
	if err := Logger.Sync(); err != nil && !isTerminalSyncError(err) {
		_, _ = os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
	}
}

func isTerminalSyncError(err error) bool {
	pathErr, ok := err.(*os.PathError)
	return ok && (pathErr.Path == "/dev/stderr" || pathErr.Path == "/dev/stdout")
}
