// Package scorer 将各弱信号按固定权重合成为 [0,1] 区间的敏感度得分
package scorer

import (
	"github.com/vaiey22/Sensitive-data-detector/internal/detector/signal"
)

// Weights 评分权重配置
// 各信号独立、封顶、加性叠加，刻意不做归一化：
// 宁可误报也不漏报
type Weights struct {
	BinaryMarker float64 // 二进制标记出现在内容中
	Keyword      float64 // 每个关键词命中
	KeywordCap   int     // 关键词计分上限（个数）
	Pattern      float64 // 任一正则模式命中（一次性，不按模式累加）
	Learned      float64 // 任一学习模式命中
	HighEntropy  float64 // 高熵内容
	EntropyGate  float64 // 熵值门限（bit）
}

// DefaultWeights 返回默认权重
func DefaultWeights() Weights {
	return Weights{
		BinaryMarker: 0.3,
		Keyword:      0.1,
		KeywordCap:   5,
		Pattern:      0.2,
		Learned:      0.3,
		HighEntropy:  0.2,
		EntropyGate:  6.5,
	}
}

// Result 评分结果
type Result struct {
	Score       float64            // 总分 [0,1]
	KeywordHits int                // 关键词命中数（未封顶）
	PatternName string             // 首个命中的模式名称
	Entropy     float64            // 内容熵值
	Details     map[string]float64 // 各项得分明细
}

// Scorer 内容评分器
type Scorer struct {
	weights Weights
}

// New 创建评分器，weights 为 nil 时使用默认权重
func New(weights *Weights) *Scorer {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return &Scorer{weights: w}
}

// Score 对内容缓冲区评分
// learned 是学习到的上下文模式快照，调用方负责从规则库取快照，
// 评分过程本身不触碰共享状态
func (s *Scorer) Score(buf []byte, learned []string) *Result {
	w := s.weights
	result := &Result{
		Details: make(map[string]float64),
	}

	score := 0.0

	// 1. 二进制标记检查
	if signal.HasBinaryMarker(buf) {
		score += w.BinaryMarker
		result.Details["binary_marker"] = w.BinaryMarker
	}

	// 2. 文本信号：解码为空则全部跳过，其余信号照常评估
	text := signal.DecodeText(buf)
	if text != "" {
		// 关键词命中，封顶计分
		hits := signal.KeywordHitCount(text)
		result.KeywordHits = hits
		if hits > 0 {
			capped := hits
			if capped > w.KeywordCap {
				capped = w.KeywordCap
			}
			kwScore := w.Keyword * float64(capped)
			score += kwScore
			result.Details["keywords"] = kwScore
		}

		// 正则模式命中，一次性加分
		if name, ok := signal.PatternHit(text); ok {
			score += w.Pattern
			result.PatternName = name
			result.Details["pattern"] = w.Pattern
		}

		// 学习模式命中
		if signal.LearnedHit(text, learned) {
			score += w.Learned
			result.Details["learned"] = w.Learned
		}
	}

	// 3. 熵值检查
	result.Entropy = signal.Entropy(buf)
	if result.Entropy > w.EntropyGate {
		score += w.HighEntropy
		result.Details["entropy"] = w.HighEntropy
	}

	// 4. 钳制到 [0,1]
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	result.Score = score

	return result
}
