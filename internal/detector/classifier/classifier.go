// Package classifier 对单个文件给出敏感/常规判定
package classifier

import (
	"path/filepath"
	"sync"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rulestore"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/scorer"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/signal"
	"github.com/vaiey22/Sensitive-data-detector/internal/fileutil"
	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
)

// HintMultiplier 敏感目录下的阈值折减系数
// 已处于已知敏感路径下的文件更可能真的敏感，降低判定门槛
const HintMultiplier = 0.7

// HeadReader 受限文件头读取函数，可注入以便测试
type HeadReader func(path string, size int) ([]byte, error)

// Verdict 单文件判定结果
type Verdict struct {
	Sensitive bool    // 是否敏感
	Score     float64 // 内容得分（快速路径与缓存命中时为上次/默认值）
	FileType  string  // 推断的文件类型
	Cached    bool    // 是否来自缓存
}

// Classifier 文件分类器
// 判定缓存在进程生命周期内有效且从不失效：本工具按一次性 CLI 设计，
// 同一路径重复出现时直接复用首次判定，即使规则状态已变化
type Classifier struct {
	store    *rulestore.Store
	scorer   *scorer.Scorer
	headSize int
	reader   HeadReader

	mu    sync.Mutex
	cache map[string]Verdict
}

// Option 分类器可选配置
type Option func(*Classifier)

// WithHeadReader 替换文件头读取实现
func WithHeadReader(reader HeadReader) Option {
	return func(c *Classifier) {
		c.reader = reader
	}
}

// WithHeadSize 设置头部读取字节数
func WithHeadSize(size int) Option {
	return func(c *Classifier) {
		if size > 0 {
			c.headSize = size
		}
	}
}

// New 创建分类器
func New(store *rulestore.Store, opts ...Option) *Classifier {
	c := &Classifier{
		store:    store,
		scorer:   scorer.New(nil),
		headSize: fileutil.DefaultHeadSize,
		reader:   fileutil.ReadHead,
		cache:    make(map[string]Verdict),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify 判定单个文件是否敏感
// sensitiveDirHint 表示文件路径位于标记为敏感样例的目录树下
func (c *Classifier) Classify(path string, sensitiveDirHint bool) Verdict {
	// 1. 缓存命中直接返回，不重新评分
	c.mu.Lock()
	if v, ok := c.cache[path]; ok {
		c.mu.Unlock()
		v.Cached = true
		return v
	}
	c.mu.Unlock()

	// 2. 无扩展名且处于敏感目录：不读内容，默认判敏感
	// 快速路径与读取失败路径都不写缓存，只有完整评分结果才值得复用
	if filepath.Ext(path) == "" && sensitiveDirHint {
		return Verdict{Sensitive: true, FileType: "unknown"}
	}

	// 3. 读取文件头；读取失败时按目录先验兜底
	head, err := c.reader(path, c.headSize)
	if err != nil {
		logger.Warn("读取文件失败，按目录先验判定",
			"path", path, "op", "read_head", "error", err)
		return Verdict{Sensitive: sensitiveDirHint, FileType: "unknown"}
	}

	fileType := fileutil.TypeLabel(head)

	// 4. 可信容器格式豁免内容评分
	if signal.IsKnownBinary(head) {
		return Verdict{Sensitive: false, FileType: fileType}
	}

	// 5. 内容评分
	result := c.scorer.Score(head, c.store.LearnedSnapshot())

	// 6. 有效阈值：敏感目录内降低门槛
	threshold := c.store.Threshold()
	if sensitiveDirHint {
		threshold *= HintMultiplier
	}

	// 7. 判定并缓存
	return c.remember(path, Verdict{
		Sensitive: result.Score > threshold,
		Score:     result.Score,
		FileType:  fileType,
	})
}

func (c *Classifier) remember(path string, v Verdict) Verdict {
	c.mu.Lock()
	c.cache[path] = v
	c.mu.Unlock()
	return v
}

// CacheSize 返回缓存条目数
func (c *Classifier) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
