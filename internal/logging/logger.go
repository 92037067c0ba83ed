// Package logging builds the client's zap logger. Logs go to a file under
// the state directory because stdout and stderr belong to the terminal UI;
// a logger that cannot be constructed degrades to a no-op rather than
// blocking startup.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFile is the name of the log inside the state directory.
const LogFile = "elib.log"

// New returns a file-backed logger at the given level. On any setup failure
// it returns a no-op logger and the error, so callers can log the problem
// once a sink exists but keep running regardless.
func New(stateDir, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return zap.NewNop(), err
	}

	path := filepath.Join(stateDir, LogFile)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop(), err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(file),
		parseLevel(level),
	)
	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
