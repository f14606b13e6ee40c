// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger. It is a no-op until Initialize is called.
var Logger = zap.NewNop().Sugar()

// Verbosity levels selected by CLI flags.
const (
	VerbosityQuiet = -1 // -q: errors only
	VerbosityUser  = 0  // no flags: warnings and errors
	VerbosityInfo  = 1  // -v: + progress per generator and file
	VerbosityDebug = 2  // -vv: + per-function decisions
)

// VerbosityToLevel maps a verbosity to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityQuiet:
		return zapcore.ErrorLevel
	case verbosity == VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Initialize builds the global logger writing human-readable lines to stderr.
func Initialize(verbosity int) {
	Logger = New(verbosity, zapcore.AddSync(os.Stderr))
}

// New builds a logger at the level for verbosity writing to ws.
func New(verbosity int, ws zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, VerbosityToLevel(verbosity))
	return zap.New(core).Sugar()
}

// Cleanup flushes any buffered log entries.
func Cleanup() {
	_ = Logger.Sync()
}
