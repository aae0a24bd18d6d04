package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

// LogLevelEnvVar controls logging verbosity when no level is passed in.
// Valid values: "debug", "info", "warn", "error".
const LogLevelEnvVar = "CARDEDITOR_LOG_LEVEL"

// Initialize creates the global logger at the given level. An empty level
// falls back to CARDEDITOR_LOG_LEVEL; if that is unset too, logging is silent.
func Initialize(level string) error {
	built, err := New(level)
	if err != nil {
		return err
	}
	mu.Lock()
	logger = built
	mu.Unlock()
	return nil
}

// InitializeFromEnv initializes the logger from CARDEDITOR_LOG_LEVEL.
func InitializeFromEnv() error {
	return Initialize("")
}

// New builds a console logger writing to stderr, keeping stdout free for
// command output.
func New(level string) (*zap.Logger, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		level = strings.TrimSpace(os.Getenv(LogLevelEnvVar))
	}
	if level == "" {
		return zap.NewNop(), nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	built, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return built, nil
}

// ParseLevel maps a level name to a zap level. Unknown names yield info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// SetLogger replaces the global logger. Tests use it to capture output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}

// GetLogger returns the global logger, silent if never initialized.
func GetLogger() *zap.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Named returns a child of the global logger.
func Named(name string) *zap.Logger {
	return GetLogger().Named(name)
}

func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogConnection records a websocket session lifecycle event.
func LogConnection(session, remoteAddr, event string) {
	Info("connection event",
		zap.String("session", session),
		zap.String("remote_addr", remoteAddr),
		zap.String("event", event),
	)
}

// LogMessage records a websocket payload at debug level.
func LogMessage(session, direction string, data []byte) {
	Debug("websocket message",
		zap.String("session", session),
		zap.String("direction", direction),
		zap.Int("length", len(data)),
		zap.ByteString("content", truncate(data, 512)),
	)
}

func truncate(data []byte, limit int) []byte {
	if len(data) <= limit {
		return data
	}
	return data[:limit]
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = GetLogger().Sync()
}
