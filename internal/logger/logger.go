// Package logger 提供全局结构化日志
// 基于 log/slog，生产环境写 JSON 到轮转文件，调试时可同时打控制台
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log  = slog.New(slog.NewTextHandler(os.Stderr, nil))
	once sync.Once
)

// Options 日志初始化选项
type Options struct {
	Level      string // debug, info, warn, error
	File       string // 日志文件路径，为空则只打控制台
	MaxSize    int    // 单文件上限 (MB)
	MaxBackups int    // 保留的旧文件个数
	MaxAge     int    // 保留天数
	Compress   bool   // 是否压缩旧日志
	Stdout     bool   // 是否同时输出到控制台
}

// Setup 初始化全局日志记录器，仅首次调用生效
func Setup(opts Options) {
	once.Do(func() {
		var writers []io.Writer

		if opts.File != "" {
			writers = append(writers, &lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    opts.MaxSize,
				MaxBackups: opts.MaxBackups,
				MaxAge:     opts.MaxAge,
				Compress:   opts.Compress,
			})
		}
		if opts.Stdout || opts.File == "" {
			writers = append(writers, os.Stderr)
		}

		handler := slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
			Level: parseLevel(opts.Level),
		})
		log = slog.New(handler)
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug 记录调试日志
func Debug(msg string, kv ...any) {
	log.Debug(msg, kv...)
}

// Info 记录信息日志
func Info(msg string, kv ...any) {
	log.Info(msg, kv...)
}

// Warn 记录警告日志
func Warn(msg string, kv ...any) {
	log.Warn(msg, kv...)
}

// Error 记录错误日志
func Error(msg string, kv ...any) {
	log.Error(msg, kv...)
}
