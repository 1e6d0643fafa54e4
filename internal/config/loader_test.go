package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// resetConfig 重置单例，保证用例之间互不影响
func resetConfig() {
	GlobalConfig = nil
	loadOnce = sync.Once{}
}

func TestLoadConfig_默认值(t *testing.T) {
	resetConfig()
	defer resetConfig()

	if err := LoadConfig(""); err != nil {
		t.Fatalf("无配置文件时应使用默认值: %v", err)
	}

	cfg := Get()
	if cfg.Scanner.BatchSize != 20 {
		t.Errorf("Scanner.BatchSize = %d, 期望 20", cfg.Scanner.BatchSize)
	}
	if cfg.Scanner.ProgressEvery != 100 {
		t.Errorf("Scanner.ProgressEvery = %d, 期望 100", cfg.Scanner.ProgressEvery)
	}
	if cfg.Scanner.HeadSize != 4096 {
		t.Errorf("Scanner.HeadSize = %d, 期望 4096", cfg.Scanner.HeadSize)
	}
	if cfg.Scanner.SensitiveMarker != "敏感文件" {
		t.Errorf("Scanner.SensitiveMarker = %q, 期望 %q", cfg.Scanner.SensitiveMarker, "敏感文件")
	}
	if cfg.Rules.File != "learned_rules.json" {
		t.Errorf("Rules.File = %q, 期望 %q", cfg.Rules.File, "learned_rules.json")
	}
	if !cfg.Database.Enable {
		t.Error("Database.Enable 默认应为 true")
	}
	if cfg.Database.JournalMode != "WAL" {
		t.Errorf("Database.JournalMode = %q, 期望 %q", cfg.Database.JournalMode, "WAL")
	}
	if cfg.Agent.LogLevel != "info" {
		t.Errorf("Agent.LogLevel = %q, 期望 %q", cfg.Agent.LogLevel, "info")
	}
}

func TestLoadConfig_环境变量覆盖(t *testing.T) {
	resetConfig()
	defer resetConfig()

	t.Setenv("SDD_SCANNER_BATCH_SIZE", "50")
	t.Setenv("SDD_RULES_FILE", "/tmp/custom_rules.json")

	if err := LoadConfig(""); err != nil {
		t.Fatal(err)
	}

	cfg := Get()
	if cfg.Scanner.BatchSize != 50 {
		t.Errorf("环境变量覆盖后 BatchSize = %d, 期望 50", cfg.Scanner.BatchSize)
	}
	if cfg.Rules.File != "/tmp/custom_rules.json" {
		t.Errorf("环境变量覆盖后 Rules.File = %q, 期望 %q",
			cfg.Rules.File, "/tmp/custom_rules.json")
	}
}

func TestLoadConfig_配置文件(t *testing.T) {
	resetConfig()
	defer resetConfig()

	content := `
agent:
  log_level: debug
scanner:
  batch_size: 10
  sensitive_marker: 样例标记
database:
  enable: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err != nil {
		t.Fatal(err)
	}

	cfg := Get()
	if cfg.Agent.LogLevel != "debug" {
		t.Errorf("Agent.LogLevel = %q, 期望 %q", cfg.Agent.LogLevel, "debug")
	}
	if cfg.Scanner.BatchSize != 10 {
		t.Errorf("Scanner.BatchSize = %d, 期望 10", cfg.Scanner.BatchSize)
	}
	if cfg.Scanner.SensitiveMarker != "样例标记" {
		t.Errorf("Scanner.SensitiveMarker = %q, 期望 %q", cfg.Scanner.SensitiveMarker, "样例标记")
	}
	if cfg.Database.Enable {
		t.Error("Database.Enable 应被配置文件覆盖为 false")
	}
	// 未覆盖的字段保留默认值
	if cfg.Scanner.HeadSize != 4096 {
		t.Errorf("Scanner.HeadSize = %d, 期望保留默认 4096", cfg.Scanner.HeadSize)
	}
}

func TestLoadConfig_显式路径不存在(t *testing.T) {
	resetConfig()
	defer resetConfig()

	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("显式指定的配置文件不存在时应返回错误")
	}
}

func TestGet_未初始化时恐慌(t *testing.T) {
	resetConfig()
	defer resetConfig()

	defer func() {
		if recover() == nil {
			t.Error("未初始化时 Get() 应 panic")
		}
	}()
	Get()
}
