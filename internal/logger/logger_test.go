package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  slog.Level
	}{
		{name: "debug", level: "debug", want: slog.LevelDebug},
		{name: "大写", level: "WARN", want: slog.LevelWarn},
		{name: "error", level: "error", want: slog.LevelError},
		{name: "未知级别回退info", level: "trace", want: slog.LevelInfo},
		{name: "空串回退info", level: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLevel(tt.level); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, 期望 %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSetup_写入日志文件(t *testing.T) {
	path := filepath.Join(t.TempDir(), "detector.log")

	Setup(Options{Level: "debug", File: path})
	Info("扫描开始", "dir", "/data/docs", "total", 42)
	Warn("读取文件失败", "path", "/data/docs/x.txt", "error", "permission denied")
	Error("检测文件时发生异常", "path", "/data/docs/y.txt")
	Debug("批次完成", "batch", 1)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("日志文件未创建: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "扫描开始") {
		t.Error("日志文件缺少 Info 记录")
	}
	if !strings.Contains(content, `"dir":"/data/docs"`) {
		t.Error("日志应为 JSON 格式并携带键值对")
	}
}

func TestSetup_仅首次生效(t *testing.T) {
	// Setup 由 sync.Once 保护，重复调用不重建日志器
	Setup(Options{Level: "error", File: filepath.Join(t.TempDir(), "other.log")})
	Info("重复初始化后的日志")
}

func Test全局入口不恐慌(t *testing.T) {
	// 四个级别的全局入口对任意键值对都不 panic
	Debug("调试", "n", 1)
	Info("信息", "key", "value")
	Warn("警告")
	Error("错误", "error", os.ErrNotExist)
}
