// Package logging 根据配置构建 zap 日志器。
// 日志只写 stderr (stdout 属于子进程)，可选写入由 lumberjack 轮转的文件。
package logging

import (
	"os"
	"strings"

	"github.com/25smoking/lockrun/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 构建日志器，console 输出到 w。
// 未知的级别回退到 warn，未知的格式回退到 console。
func New(cfg config.LogConfig, w zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.WarnLevel)
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
			level.SetLevel(zap.WarnLevel)
		}
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(cfg.Format, isTerminal(w)), w, level),
	}

	if cfg.File != "" {
		// 文件始终使用 JSON
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
		cores = append(cores, zapcore.NewCore(encoder("json", false), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("lockrun")
}

func encoder(format string, color bool) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")

	if format == "json" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}

	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if color {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return zapcore.NewConsoleEncoder(encoderConfig)
}

func isTerminal(w zapcore.WriteSyncer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Sync 刷新日志，忽略 stderr 不支持 fsync 时的常见错误
func Sync(logger *zap.Logger) {
	if logger == nil {
		return
	}
	if err := logger.Sync(); err != nil {
		msg := err.Error()
		if !strings.Contains(msg, "/dev/stderr") &&
			!strings.Contains(msg, "invalid argument") &&
			!strings.Contains(msg, "inappropriate ioctl") &&
			!strings.Contains(msg, "operation not supported") {
			os.Stderr.WriteString("lockrun: failed to sync logger: " + msg + "\n")
		}
	}
}
