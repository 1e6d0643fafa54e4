package signal

import (
	"math"
)

// Entropy 计算字节值分布的香农熵（单位: bit）
// 空缓冲区返回 0；熵值高于 6.5 通常意味着加密或压缩数据
func Entropy(buf []byte) float64 {
	if len(buf) == 0 {
		return 0
	}

	var counts [256]int
	for _, b := range buf {
		counts[b]++
	}

	total := float64(len(buf))
	entropy := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}

	return entropy
}
