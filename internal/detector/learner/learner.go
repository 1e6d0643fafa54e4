// Package learner 从标注样本中学习检测参数
//
// 学习算法刻意保持简单：关键词上下文窗口采集 + 阈值滑动均值。
// 没有负样本处理，也没有异常值剔除——阈值只会被标注敏感的样本拉动
package learner

import (
	"strings"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rules"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rulestore"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/scorer"
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/signal"
)

// ContextWindow 关键词上下文窗口半径（前后各取的词数）
const ContextWindow = 2

// Sample 学习样本
type Sample struct {
	Path          string // 文件路径（仅用于日志与结果行）
	Content       []byte // 文件头部内容
	SensitiveHint bool   // 是否来自标注敏感的目录
}

// Harvest 一次学习提取出的待应用变更
// 提取是纯函数，应用由持有规则库的一方串行执行，
// 工作协程之间因此不会产生对规则库的并发写
type Harvest struct {
	Contexts []string  // 采集到的上下文模式
	Scores   []float64 // 待记入阈值历史的样本得分
}

// Learner 规则学习器
type Learner struct {
	store  *rulestore.Store
	scorer *scorer.Scorer
}

// New 创建学习器
func New(store *rulestore.Store) *Learner {
	return &Learner{
		store:  store,
		scorer: scorer.New(nil),
	}
}

// Extract 从样本中提取学习内容，不触碰规则库
func (l *Learner) Extract(sample Sample) *Harvest {
	harvest := &Harvest{}

	if len(sample.Content) == 0 {
		return harvest
	}

	// 1. 文本上下文采集：解码失败（得到空文本）时跳过，
	// 但标注敏感的样本仍然参与阈值统计
	text := signal.DecodeText(sample.Content)
	if text != "" {
		words := strings.Fields(text)
		for i, word := range words {
			if !rules.SensitiveKeywords.HasWord(word) {
				continue
			}
			start := i - ContextWindow
			if start < 0 {
				start = 0
			}
			end := i + ContextWindow + 1
			if end > len(words) {
				end = len(words)
			}
			harvest.Contexts = append(harvest.Contexts, strings.Join(words[start:end], " "))
		}
	}

	// 2. 阈值样本：标注敏感目录下的文件贡献一个得分观测
	// 上下文采集先于评分，本样本刚采集的上下文对自身评分可见：
	// 含关键词词元的样本因此带上学习加分
	if sample.SensitiveHint {
		learned := append(l.store.LearnedSnapshot(), harvest.Contexts...)
		result := l.scorer.Score(sample.Content, learned)
		harvest.Scores = append(harvest.Scores, result.Score)
	}

	return harvest
}

// Apply 将提取结果写入规则库
// 规则库内部有锁，这里保持逐条应用以维持批内插入顺序
func (l *Learner) Apply(harvest *Harvest) {
	if harvest == nil {
		return
	}
	for _, ctx := range harvest.Contexts {
		l.store.AddLearnedContext(ctx)
	}
	for _, score := range harvest.Scores {
		l.store.RecordSample(score)
	}
}

// LearnFromSample 提取并立即应用，单线程调用时的便捷入口
func (l *Learner) LearnFromSample(sample Sample) {
	l.Apply(l.Extract(sample))
}
