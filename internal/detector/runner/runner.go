// Package runner 将文件列表切分为批次，经有界工作池并发处理，
// 聚合结果并在学习模式下按检查点持久化规则库
package runner

import (
	"context"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/classifier"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/learner"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rulestore"
	"github.com/vaiey22/Sensitive-data-detector/internal/fileutil"
	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
)

// Mode 运行模式
type Mode int

const (
	// ModeDetect 检测模式：对每个文件给出敏感/常规判定
	ModeDetect Mode = iota
	// ModeLearn 学习模式：从标注目录更新规则库
	ModeLearn
)

// 结果标签
const (
	LabelSensitive = "sensitive"
	LabelRegular   = "regular"
	LabelLearned   = "learned"
	LabelFailed    = "failed"
)

// 运行状态
type State int32

const (
	StateIdle State = iota
	StateDispatching
	StateAggregating
	StateDone
)

// DefaultMarker 敏感样例目录的路径标记段
const DefaultMarker = "敏感文件"

// Result 单文件处理结果
type Result struct {
	Path     string  // 文件绝对路径
	Label    string  // 结果标签
	Score    float64 // 内容得分（检测模式）
	FileType string  // 推断文件类型
}

// Options 批处理运行选项
type Options struct {
	BatchSize     int    // 每批文件数，默认 20
	MaxWorkers    int    // 工作池上限，默认 min(32, 2×CPU)
	ProgressEvery int    // 进度/检查点间隔（已完成文件数），默认 100
	Marker        string // 敏感目录标记段，默认 "敏感文件"

	// Progress 进度回调，按间隔与运行结束时触发
	Progress func(done, total int)
}

func (o *Options) fillDefaults() {
	if o.BatchSize <= 0 {
		o.BatchSize = 20
	}
	if o.MaxWorkers <= 0 {
		o.MaxWorkers = 2 * runtime.NumCPU()
		if o.MaxWorkers > 32 {
			o.MaxWorkers = 32
		}
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 100
	}
	if o.Marker == "" {
		o.Marker = DefaultMarker
	}
}

// Runner 批处理调度器
type Runner struct {
	classifier *classifier.Classifier
	learner    *learner.Learner
	store      *rulestore.Store
	opts       Options
	headSize   int

	state atomic.Int32
}

// New 创建批处理调度器
func New(store *rulestore.Store, cls *classifier.Classifier, lrn *learner.Learner, opts Options) *Runner {
	opts.fillDefaults()
	return &Runner{
		classifier: cls,
		learner:    lrn,
		store:      store,
		opts:       opts,
		headSize:   fileutil.DefaultHeadSize,
	}
}

// State 返回当前运行状态
func (r *Runner) State() State {
	return State(r.state.Load())
}

// IsSensitiveDir 判断目录路径是否含敏感标记段
func (r *Runner) IsSensitiveDir(dir string) bool {
	return strings.Contains(dir, r.opts.Marker)
}

// batchOutcome 单批处理产出
// 学习提取结果与判定结果一并交回收集器，工作协程不直接写规则库
type batchOutcome struct {
	results  []Result
	harvests []*learner.Harvest
}

// Run 处理目录下的全部文件
// 批次乱序执行；返回前按路径排序，保证报告输出可复现。
// 任何单文件故障都映射为兜底结果，绝不中断整个运行
func (r *Runner) Run(ctx context.Context, dir string, mode Mode) ([]Result, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	files, err := fileutil.ListFiles(absDir)
	if err != nil {
		return nil, err
	}

	hint := r.IsSensitiveDir(absDir)
	total := len(files)

	r.state.Store(int32(StateDispatching))

	batches := partition(files, r.opts.BatchSize)
	outcomes := make(chan batchOutcome, len(batches))

	// 收集器：唯一向规则库写入的协程，批内顺序即插入顺序，
	// 批间顺序由完成先后决定（阈值是均值，对顺序不敏感）
	results := make([]Result, 0, total)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		processed := 0
		lastCheckpoint := 0
		for outcome := range outcomes {
			for _, h := range outcome.harvests {
				r.learner.Apply(h)
			}
			results = append(results, outcome.results...)
			processed += len(outcome.results)

			if processed/r.opts.ProgressEvery > lastCheckpoint/r.opts.ProgressEvery {
				lastCheckpoint = processed
				r.checkpoint(mode, processed, total)
			}
		}
		r.checkpoint(mode, processed, total)
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.MaxWorkers)

	for _, batch := range batches {
		batch := batch
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes <- r.processBatch(batch, hint, mode)
			return nil
		})
	}

	err = g.Wait()
	r.state.Store(int32(StateAggregating))
	close(outcomes)
	<-collectorDone

	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	r.state.Store(int32(StateDone))
	return results, nil
}

// checkpoint 进度上报，学习模式下同时落盘规则库使中途崩溃不丢全部进度
func (r *Runner) checkpoint(mode Mode, done, total int) {
	if r.opts.Progress != nil {
		r.opts.Progress(done, total)
	}
	if mode == ModeLearn {
		r.store.Save()
	}
}

// processBatch 按输入顺序处理一批文件
func (r *Runner) processBatch(batch []string, hint bool, mode Mode) batchOutcome {
	outcome := batchOutcome{results: make([]Result, 0, len(batch))}

	for _, path := range batch {
		switch mode {
		case ModeLearn:
			harvest, res := r.learnFile(path, hint)
			if harvest != nil {
				outcome.harvests = append(outcome.harvests, harvest)
			}
			outcome.results = append(outcome.results, res)
		default:
			outcome.results = append(outcome.results, r.detectFile(path, hint))
		}
	}

	return outcome
}

// detectFile 检测单个文件，panic 就地捕获并映射为兜底判敏感
func (r *Runner) detectFile(path string, hint bool) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("检测文件时发生异常，兜底判为敏感",
				"path", path, "op", "detect", "error", rec,
				"stack", string(debug.Stack()))
			res = Result{Path: path, Label: LabelSensitive}
		}
	}()

	verdict := r.classifier.Classify(path, hint)
	label := LabelRegular
	if verdict.Sensitive {
		label = LabelSensitive
	}
	return Result{Path: path, Label: label, Score: verdict.Score, FileType: verdict.FileType}
}

// learnFile 从单个文件提取学习内容，任何失败只影响该文件
func (r *Runner) learnFile(path string, hint bool) (harvest *learner.Harvest, res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("学习文件时发生异常",
				"path", path, "op", "learn", "error", rec,
				"stack", string(debug.Stack()))
			harvest, res = nil, Result{Path: path, Label: LabelFailed}
		}
	}()

	content, err := fileutil.ReadHead(path, r.headSize)
	if err != nil {
		logger.Warn("读取学习样本失败", "path", path, "op", "read_head", "error", err)
		return nil, Result{Path: path, Label: LabelFailed}
	}

	harvest = r.learner.Extract(learner.Sample{
		Path:          path,
		Content:       content,
		SensitiveHint: hint,
	})
	return harvest, Result{Path: path, Label: LabelLearned}
}

// partition 将文件列表切分为固定大小的批次
func partition(files []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		batches = append(batches, files[start:end])
	}
	return batches
}
