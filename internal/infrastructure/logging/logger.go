// Package logging настраивает zap с ротацией файлов через lumberjack.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func formatEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("20060102_150405"))
}

// ParseLevel переводит строку уровня в zapcore.Level. Неизвестный уровень даёт info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func rotatingWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    100, // МБ
		MaxBackups: 7,
		MaxAge:     7, // дней
	})
}

// New создаёт логгер: JSON в <dir>/<name>.log, ошибки отдельно в <dir>/error_<name>.log, текст в консоль.
// Пустой dir отключает запись в файлы.
func New(name, level, dir string) (*zap.Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "trace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     formatEncodeTime,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	lvl := zap.NewAtomicLevelAt(ParseLevel(level))

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), lvl),
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		errorLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.ErrorLevel
		})
		cores = append(cores,
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), rotatingWriter(filepath.Join(dir, name+".log")), lvl),
			zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), rotatingWriter(filepath.Join(dir, "error_"+name+".log")), errorLevel),
		)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(name), nil
}
