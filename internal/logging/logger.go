package logging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dummy-data/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerService interface {
	Log(value string, fields ...zap.Field)
	LogError(value string, err error, fields ...zap.Field)
	LogWarning(value string, fields ...zap.Field)
	LogSuccess(value string, fields ...zap.Field)
	Sync() error
}

type Logger struct {
	zap      *zap.Logger
	telegram *Telegram
}

// NewLogger builds the zap logger. Interactive mode owns the terminal, so
// without a log file nothing is written locally.
func NewLogger(cfg config.LogConfig, telegram *Telegram, interactive bool) (LoggerService, error) {
	if interactive && strings.TrimSpace(cfg.File) == "" {
		return newLogger(zap.NewNop(), telegram), nil
	}

	zapCfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = level
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if file := strings.TrimSpace(cfg.File); file != "" {
		zapCfg.OutputPaths = []string{file}
		zapCfg.ErrorOutputPaths = []string{file}
	}

	z, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return newLogger(z, telegram), nil
}

func newLogger(z *zap.Logger, telegram *Telegram) *Logger {
	if telegram != nil {
		telegram.onError = func(err error) {
			z.Warn("telegram mirror failed", zap.Error(err))
		}
	}
	return &Logger{zap: z, telegram: telegram}
}

// NewWithZap wraps an existing zap logger, mainly for tests.
func NewWithZap(z *zap.Logger, telegram *Telegram) LoggerService {
	if z == nil {
		z = zap.NewNop()
	}
	return newLogger(z, telegram)
}

func NewNop() LoggerService {
	return &Logger{zap: zap.NewNop()}
}

func (l *Logger) Log(value string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.zap.Info(value, fields...)
}

func (l *Logger) LogError(value string, err error, fields ...zap.Field) {
	if l == nil {
		return
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.zap.Error(value, fields...)
	text := value
	if err != nil {
		text = fmt.Sprintf("%s: %v", value, err)
	}
	l.mirror(formatMessage(iconError, "ERROR", text))
}

func (l *Logger) LogWarning(value string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.zap.Warn(value, fields...)
	l.mirror(formatMessage(iconWarning, "WARNING", value))
}

func (l *Logger) LogSuccess(value string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.zap.Info(value, append(fields, zap.Bool("success", true))...)
	l.mirror(formatMessage(iconSuccess, "SUCCESS", value))
}

// Sync flushes the Telegram queue, stops its worker and syncs zap. Lines
// logged afterwards are not mirrored.
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), telegramTimeout)
	defer cancel()
	flushErr := l.telegram.Close(ctx)
	return errors.Join(flushErr, l.zap.Sync())
}

func (l *Logger) mirror(text string) {
	if l.telegram == nil {
		return
	}
	if !l.telegram.Enqueue(text) {
		l.zap.Warn("telegram mirror dropped a line", zap.String("text", text))
	}
}
