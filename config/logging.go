package config

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogWriter is the writer used for request and database logs.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return filepath.Join("logs", "pmo-api.log")
}

// InitLogging opens the log file and builds the application logger on top of
// stdout plus that file. If the file cannot be opened, logging continues on
// stdout only. The returned func flushes the logger and closes the file.
func InitLogging(production bool) (*zap.Logger, func()) {
	var logFile *os.File
	if err := os.MkdirAll(filepath.Dir(LogFilePath()), os.ModePerm); err == nil {
		logFile, _ = os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	}

	LogWriter = os.Stdout
	if logFile != nil {
		LogWriter = io.MultiWriter(os.Stdout, logFile)
	}

	logger := NewLogger(LogWriter, production)
	if logFile == nil {
		logger.Warn("failed to open log file, logging to stdout only", zap.String("path", LogFilePath()))
	}
	zap.ReplaceGlobals(logger)

	return logger, func() {
		_ = logger.Sync()
		if logFile != nil {
			_ = logFile.Close()
		}
	}
}

// NewLogger builds a zap logger writing to w: JSON at Info in production,
// console at Debug otherwise.
func NewLogger(w io.Writer, production bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	level := zapcore.DebugLevel
	encoder := zapcore.NewConsoleEncoder(encCfg)
	if production {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		level = zapcore.InfoLevel
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller())
}
