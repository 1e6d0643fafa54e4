// Package report 输出检测结果报告
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/runner"
)

// CSVPath 根据被扫描目录生成报告文件路径: <目录>_results.csv
func CSVPath(dir string) string {
	return filepath.Clean(dir) + "_results.csv"
}

// WriteCSV 将结果写为两列 CSV (filename, label)
// 调用方保证 results 已按路径排序
func WriteCSV(path string, results []runner.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建报告文件失败: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"filename", "label"}); err != nil {
		return err
	}

	for _, res := range results {
		if err := writer.Write([]string{filepath.Base(res.Path), res.Label}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
