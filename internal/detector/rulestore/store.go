// Package rulestore 管理可学习的规则状态：
// 学习到的上下文模式、自适应阈值及其滑动历史
//
// 原型实现中这份状态是无保护的全局变量，并发学习存在数据竞争；
// 这里所有变更统一走内部锁，调用方无需额外串行化
package rulestore

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/vaiey22/Sensitive-data-detector/internal/logger"
)

const (
	// DefaultThreshold 默认判定阈值
	DefaultThreshold = 0.35

	// HistoryCapacity 阈值历史容量，超出后 FIFO 淘汰最旧样本
	HistoryCapacity = 1000
)

// Store 规则库
// 不变式: 历史非空时 threshold == mean(history)，len(history) <= HistoryCapacity
type Store struct {
	mu sync.RWMutex

	path string

	learned   map[string]struct{}
	features  map[string]json.RawMessage // 算法暂未使用，保留以兼容旧规则文件
	threshold float64
	history   []float64
}

// ruleFile 规则文件的持久化结构
type ruleFile struct {
	Patterns  []string                   `json:"patterns"`
	Features  map[string]json.RawMessage `json:"features"`
	Threshold float64                    `json:"threshold"`
	History   []float64                  `json:"history"`
}

// New 创建规则库，path 为规则文件路径
func New(path string) *Store {
	return &Store{
		path:      path,
		learned:   make(map[string]struct{}),
		features:  make(map[string]json.RawMessage),
		threshold: DefaultThreshold,
	}
}

// Load 从规则文件加载持久化状态
// 文件不存在或内容损坏时保留内置默认值并返回 false，绝不向上抛错
func (s *Store) Load() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("读取规则文件失败", "path", s.path, "error", err)
		}
		return false
	}

	var rf ruleFile
	if err := json.Unmarshal(data, &rf); err != nil {
		logger.Error("解析规则文件失败", "path", s.path, "error", err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.learned = make(map[string]struct{}, len(rf.Patterns))
	for _, p := range rf.Patterns {
		if p != "" {
			s.learned[p] = struct{}{}
		}
	}
	if rf.Features != nil {
		s.features = rf.Features
	}
	if rf.Threshold > 0 && rf.Threshold <= 1 {
		s.threshold = rf.Threshold
	}
	if len(rf.History) > HistoryCapacity {
		rf.History = rf.History[len(rf.History)-HistoryCapacity:]
	}
	s.history = rf.History

	// 历史非空时阈值必须等于历史均值，
	// 文件里的阈值可能与截断后（或被篡改的）历史失配
	if len(s.history) > 0 {
		sum := 0.0
		for _, v := range s.history {
			sum += v
		}
		s.threshold = sum / float64(len(s.history))
	}

	return true
}

// Save 将当前可变状态序列化到规则文件
// I/O 失败时记日志并返回 false，不中断调用方
func (s *Store) Save() bool {
	s.mu.RLock()
	rf := ruleFile{
		Patterns:  make([]string, 0, len(s.learned)),
		Features:  s.features,
		Threshold: s.threshold,
		History:   append([]float64(nil), s.history...),
	}
	for p := range s.learned {
		rf.Patterns = append(rf.Patterns, p)
	}
	s.mu.RUnlock()

	// 集合无序，排序后落盘保证文件内容可复现
	sort.Strings(rf.Patterns)

	data, err := json.MarshalIndent(&rf, "", "  ")
	if err != nil {
		logger.Error("序列化规则失败", "path", s.path, "error", err)
		return false
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		logger.Error("保存规则文件失败", "path", s.path, "error", err)
		return false
	}

	return true
}

// RecordSample 追加一个标注敏感样本的得分并重算阈值
// 历史超出容量时淘汰最旧样本，阈值始终等于历史均值
func (s *Store) RecordSample(score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, score)
	if len(s.history) > HistoryCapacity {
		s.history = s.history[1:]
	}

	sum := 0.0
	for _, v := range s.history {
		sum += v
	}
	s.threshold = sum / float64(len(s.history))
}

// AddLearnedContext 添加一条学习到的上下文模式（集合语义，幂等）
func (s *Store) AddLearnedContext(ctx string) {
	if ctx == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.learned[ctx] = struct{}{}
}

// Threshold 返回当前自适应阈值
func (s *Store) Threshold() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

// LearnedSnapshot 返回学习模式的只读快照
func (s *Store) LearnedSnapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]string, 0, len(s.learned))
	for p := range s.learned {
		snapshot = append(snapshot, p)
	}
	return snapshot
}

// HistorySnapshot 返回阈值历史的只读快照（按插入顺序）
func (s *Store) HistorySnapshot() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.history...)
}

// LearnedCount 返回学习模式数量
func (s *Store) LearnedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.learned)
}
