// Package logging builds the process logger: a logr.Logger backed by zap.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/crmarques/datashelf/config"
	"github.com/crmarques/datashelf/faults"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to w at the given level and format. Debug
// maps to logr verbosity 1; warn and error only let errors through since
// logr has no warn level of its own.
func New(w io.Writer, level string, format string) (logr.Logger, error) {
	zapLevel, err := parseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	encoder, err := newEncoder(format)
	if err != nil {
		return logr.Discard(), err
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(zapLevel))
	return zapr.NewLogger(zap.New(core)), nil
}

func parseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case config.LogLevelDebug:
		return zapcore.DebugLevel, nil
	case "", config.LogLevelInfo:
		return zapcore.InfoLevel, nil
	case config.LogLevelWarn:
		return zapcore.WarnLevel, nil
	case config.LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("unsupported log level %q", level),
			nil,
		)
	}
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", config.LogFormatConsole:
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.TimeKey = ""
		return zapcore.NewConsoleEncoder(encoderConfig), nil
	case config.LogFormatJSON:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, faults.NewTypedError(
			faults.ValidationError,
			fmt.Sprintf("unsupported log format %q", format),
			nil,
		)
	}
}
