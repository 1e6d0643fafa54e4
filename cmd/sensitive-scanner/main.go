// Package main 敏感文件扫描器命令行入口
// learn 模式从标注目录学习检测参数，detect 模式对目录做敏感判定
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vaiey22/Sensitive-data-detector/internal/config"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/classifier"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/learner"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rulestore"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/runner"
	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
	"github.com/vaiey22/Sensitive-data-detector/internal/report"
	"github.com/vaiey22/Sensitive-data-detector/internal/storage"
)

// ==========================================
// 全局变量和配置
// ==========================================

var (
	version = "1.0.0"
	appName = "sensitive-scanner"

	// 命令行参数
	configPath string
	rulesPath  string
	noDatabase bool
	verbose    bool

	// 颜色输出
	colorRed    = color.New(color.FgRed, color.Bold)
	colorGreen  = color.New(color.FgGreen, color.Bold)
	colorYellow = color.New(color.FgYellow)
	colorCyan   = color.New(color.FgCyan)
)

// ==========================================
// 主入口
// ==========================================

func main() {
	if err := rootCmd.Execute(); err != nil {
		colorRed.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ==========================================
// 根命令
// ==========================================

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "自学习敏感文件扫描器",
	Long: `基于轻量自适应启发式评分的敏感文件扫描器。

detect 模式对目录下每个文件给出 敏感/常规 判定并输出 CSV 报告；
learn 模式从标注敏感的样例目录学习上下文特征并校准判定阈值。

示例:
  # 从敏感样例目录学习规则
  sensitive-scanner learn /data/敏感文件样例

  # 检测目录并输出报告
  sensitive-scanner detect /data/待检目录
`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadConfig(configPath); err != nil {
			return err
		}

		cfg := config.Get()
		if rulesPath != "" {
			cfg.Rules.File = rulesPath
		}

		level := cfg.Agent.LogLevel
		if verbose {
			level = "debug"
		}
		logger.Setup(logger.Options{
			Level:      level,
			File:       cfg.Agent.LogFile,
			MaxSize:    cfg.Agent.LogMaxSize,
			MaxBackups: cfg.Agent.LogMaxBackups,
			MaxAge:     cfg.Agent.LogMaxAge,
			Compress:   cfg.Agent.LogCompress,
			Stdout:     cfg.Agent.LogStdout || verbose,
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认搜索 /etc/sensitive-scanner/ 和当前目录)")
	rootCmd.PersistentFlags().StringVarP(&rulesPath, "rules", "r", "", "学习规则文件路径 (覆盖配置)")
	rootCmd.PersistentFlags().BoolVar(&noDatabase, "no-db", false, "禁用结果入库")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "详细输出")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(detectCmd)
}

// ==========================================
// learn 命令
// ==========================================

var learnCmd = &cobra.Command{
	Use:   "learn <目录>",
	Short: "从标注目录学习检测参数",
	Long: `遍历目录下的文件，采集敏感关键词的上下文特征，
并用标注敏感样本的得分校准自适应阈值，
输出 <目录>_results.csv 报告，每行为 (filename, label)。

目录路径应包含敏感标记段（默认 "敏感文件"），否则阈值不会更新。`,
	Args: cobra.ExactArgs(1),
	RunE: runLearn,
}

func runLearn(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := checkDirectory(dir); err != nil {
		return err
	}

	cfg := config.Get()
	store := rulestore.New(cfg.Rules.File)
	store.Load()

	r := newRunner(store, cfg)
	if !r.IsSensitiveDir(dir) {
		colorYellow.Printf("警告: 目录路径不含敏感标记段 %q，学习不会校准阈值\n",
			cfg.Scanner.SensitiveMarker)
	}

	colorCyan.Printf("开始从 %s 学习规则...\n", dir)
	start := time.Now()

	results, err := r.Run(context.Background(), dir, runner.ModeLearn)
	if err != nil {
		return err
	}

	// 结束前再落盘一次，检查点之外的增量不丢失
	if !store.Save() {
		colorYellow.Println("警告: 规则文件保存失败，本次学习结果未持久化")
	}

	csvPath := report.CSVPath(dir)
	if err := report.WriteCSV(csvPath, results); err != nil {
		return err
	}

	failed := storage.CountByLabel(results, runner.LabelFailed)
	colorGreen.Printf("\n规则学习完成! 共 %d 个文件，失败 %d 个，用时 %s\n",
		len(results), failed, time.Since(start).Round(time.Millisecond))
	fmt.Printf("学习模式数: %d，当前阈值: %.4f\n", store.LearnedCount(), store.Threshold())
	fmt.Printf("规则已保存到: %s\n", cfg.Rules.File)
	fmt.Printf("学习报告已保存到: %s\n", csvPath)

	saveToDatabase(dir, "learn", start, results)
	return nil
}

// ==========================================
// detect 命令
// ==========================================

var detectCmd = &cobra.Command{
	Use:   "detect <目录>",
	Short: "检测目录下的敏感文件",
	Long: `对目录下每个文件读取头部内容并评分，
输出 <目录>_results.csv 报告，每行为 (filename, label)。`,
	Args: cobra.ExactArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if err := checkDirectory(dir); err != nil {
		return err
	}

	cfg := config.Get()
	if _, err := os.Stat(cfg.Rules.File); os.IsNotExist(err) {
		colorYellow.Printf("警告: 未找到规则文件 %s，建议先运行学习模式生成规则\n", cfg.Rules.File)
	}

	store := rulestore.New(cfg.Rules.File)
	store.Load()

	r := newRunner(store, cfg)

	colorCyan.Printf("开始检测 %s 中的文件...\n", dir)
	start := time.Now()

	results, err := r.Run(context.Background(), dir, runner.ModeDetect)
	if err != nil {
		return err
	}

	csvPath := report.CSVPath(dir)
	if err := report.WriteCSV(csvPath, results); err != nil {
		return err
	}

	sensitive := storage.CountByLabel(results, runner.LabelSensitive)
	colorGreen.Printf("\n检测完成! 共 %d 个文件，用时 %s\n",
		len(results), time.Since(start).Round(time.Millisecond))
	if sensitive > 0 {
		colorRed.Printf("发现敏感文件: %d 个\n", sensitive)
	} else {
		fmt.Println("未发现敏感文件")
	}
	fmt.Printf("检测结果已保存到: %s\n", csvPath)

	saveToDatabase(dir, "detect", start, results)
	return nil
}

// ==========================================
// 辅助函数
// ==========================================

func checkDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("目录不存在: %s", dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("路径不是目录: %s", dir)
	}
	return nil
}

func newRunner(store *rulestore.Store, cfg *config.AppConfig) *runner.Runner {
	cls := classifier.New(store, classifier.WithHeadSize(cfg.Scanner.HeadSize))
	lrn := learner.New(store)

	return runner.New(store, cls, lrn, runner.Options{
		BatchSize:     cfg.Scanner.BatchSize,
		MaxWorkers:    cfg.Scanner.MaxWorkers,
		ProgressEvery: cfg.Scanner.ProgressEvery,
		Marker:        cfg.Scanner.SensitiveMarker,
		Progress: func(done, total int) {
			if total == 0 {
				return
			}
			fmt.Printf("进度: %d/%d (%.1f%%)\n", done, total, float64(done)/float64(total)*100)
		},
	})
}

// saveToDatabase 结果入库，失败只告警不影响主流程
func saveToDatabase(dir, mode string, start time.Time, results []runner.Result) {
	cfg := config.Get()
	if noDatabase || !cfg.Database.Enable {
		return
	}

	if err := storage.Setup(storage.Options{
		DataDir:         cfg.Agent.DataDir,
		FileName:        cfg.Database.FileName,
		LogLevel:        cfg.Database.LogLevel,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		JournalMode:     cfg.Database.JournalMode,
		Synchronous:     cfg.Database.Synchronous,
		TempStore:       cfg.Database.TempStore,
	}); err != nil {
		colorYellow.Printf("警告: 数据库不可用，结果仅输出报告: %v\n", err)
		return
	}

	storage.SaveRun(&storage.ScanRun{
		Dir:        dir,
		Mode:       mode,
		Total:      len(results),
		Sensitive:  storage.CountByLabel(results, runner.LabelSensitive),
		StartedAt:  start,
		FinishedAt: time.Now(),
	}, results)
}
