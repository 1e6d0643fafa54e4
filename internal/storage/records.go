package storage

import (
	"time"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/runner"
	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
)

// ScanRun 一次扫描运行
type ScanRun struct {
	ID         uint   `gorm:"primaryKey"`
	Dir        string `gorm:"index"` // 被扫描目录
	Mode       string // learn / detect
	Total      int    // 处理文件总数
	Sensitive  int    // 判敏感文件数
	StartedAt  time.Time
	FinishedAt time.Time
}

// ScanRecord 单文件判定记录
type ScanRecord struct {
	ID        uint   `gorm:"primaryKey"`
	RunID     uint   `gorm:"index"`
	Path      string `gorm:"index"`
	Label     string
	Score     float64
	FileType  string
	CreatedAt time.Time
}

// SaveRun 持久化一次运行及其全部文件记录
// 数据库未初始化或写入失败时记日志返回 false，不影响主流程
func SaveRun(run *ScanRun, results []runner.Result) bool {
	if !Ready() {
		return false
	}

	if err := db.Create(run).Error; err != nil {
		logger.Error("保存扫描运行记录失败", "dir", run.Dir, "op", "save_run", "error", err)
		return false
	}

	records := make([]ScanRecord, 0, len(results))
	for _, res := range results {
		records = append(records, ScanRecord{
			RunID:    run.ID,
			Path:     res.Path,
			Label:    res.Label,
			Score:    res.Score,
			FileType: res.FileType,
		})
	}

	if len(records) > 0 {
		// 分批插入，避免超出 SQLite 变量数限制
		if err := db.CreateInBatches(records, 200).Error; err != nil {
			logger.Error("保存文件判定记录失败", "dir", run.Dir, "op", "save_records", "error", err)
			return false
		}
	}

	return true
}

// CountByLabel 统计结果中指定标签的数量
func CountByLabel(results []runner.Result, label string) int {
	count := 0
	for _, res := range results {
		if res.Label == label {
			count++
		}
	}
	return count
}
