package platform

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logging environment variables.
const (
	EnvLogLevel = "TOOLSHUB_LOG_LEVEL"
	EnvLogFile  = "TOOLSHUB_LOG_FILE"
)

// DefaultLogLevel keeps routine runs quiet; catalog repairs still show.
const DefaultLogLevel = "warn"

// ResolveLogLevel returns flag when set, then $TOOLSHUB_LOG_LEVEL, then the
// default.
func ResolveLogLevel(flag string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		return env
	}
	return DefaultLogLevel
}

// NewLogger builds a console logger at level writing to w.
func NewLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	if f, ok := w.(*os.File); ok && colorEnabled && IsTerminal(f) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// NewTUILogger returns a logger that cannot disturb the alt screen: it
// writes to $TOOLSHUB_LOG_FILE when set and discards otherwise. The returned
// closer releases the file.
func NewTUILogger(level string) (*zap.Logger, func(), error) {
	path := strings.TrimSpace(os.Getenv(EnvLogFile))
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger, err := NewLogger(level, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() {
		_ = logger.Sync()
		f.Close()
	}, nil
}
