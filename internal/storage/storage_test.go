package storage

import (
	"testing"
	"time"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/runner"
)

func TestCountByLabel(t *testing.T) {
	results := []runner.Result{
		{Path: "/a", Label: runner.LabelSensitive},
		{Path: "/b", Label: runner.LabelRegular},
		{Path: "/c", Label: runner.LabelSensitive},
		{Path: "/d", Label: runner.LabelFailed},
	}

	tests := []struct {
		name  string
		label string
		want  int
	}{
		{name: "敏感", label: runner.LabelSensitive, want: 2},
		{name: "常规", label: runner.LabelRegular, want: 1},
		{name: "失败", label: runner.LabelFailed, want: 1},
		{name: "无匹配", label: runner.LabelLearned, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountByLabel(results, tt.label); got != tt.want {
				t.Errorf("CountByLabel(%q) = %d, 期望 %d", tt.label, got, tt.want)
			}
		})
	}

	if got := CountByLabel(nil, runner.LabelSensitive); got != 0 {
		t.Errorf("空结果计数 = %d, 期望 0", got)
	}
}

func TestSaveRun_未初始化时降级(t *testing.T) {
	// 不调用 Setup，SaveRun 应直接返回 false 而不 panic
	if Ready() {
		t.Skip("数据库已被其他用例初始化")
	}

	ok := SaveRun(&ScanRun{Dir: "/data/docs", Mode: "detect"}, nil)
	if ok {
		t.Error("数据库未初始化时 SaveRun 应返回 false")
	}
}

func TestSetupAndSaveRun(t *testing.T) {
	err := Setup(Options{
		DataDir:         t.TempDir(),
		FileName:        "scanner_test.db",
		LogLevel:        "silent",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		JournalMode:     "WAL",
		Synchronous:     "NORMAL",
		TempStore:       "MEMORY",
	})
	if err != nil {
		t.Fatalf("数据库初始化失败: %v", err)
	}
	if !Ready() {
		t.Fatal("初始化成功后 Ready 应为 true")
	}

	run := &ScanRun{
		Dir:        "/data/docs",
		Mode:       "detect",
		Total:      2,
		Sensitive:  1,
		StartedAt:  time.Now().Add(-time.Second),
		FinishedAt: time.Now(),
	}
	results := []runner.Result{
		{Path: "/data/docs/a.txt", Label: runner.LabelSensitive, Score: 0.6, FileType: "unknown"},
		{Path: "/data/docs/b.zip", Label: runner.LabelRegular, Score: 0, FileType: "zip"},
	}

	if !SaveRun(run, results) {
		t.Fatal("SaveRun 失败")
	}
	if run.ID == 0 {
		t.Error("保存后 ScanRun 应获得主键")
	}

	var count int64
	if err := DB().Model(&ScanRecord{}).Where("run_id = ?", run.ID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("入库记录数 = %d, 期望 2", count)
	}
}
