package signal

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/vaiey22/Sensitive-data-detector/internal/detector/rules"
)

// DecodeText 尽力而为地将字节解码为小写文本，永不失败
// 优先按 UTF-8 解释；无效时尝试 GBK 转码（Windows 来源文件常见）；
// 仍失败则丢弃非法字节序列作为保底
func DecodeText(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}

	if utf8.Valid(buf) {
		return strings.ToLower(string(buf))
	}

	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), buf)
	if err == nil && utf8.Valid(decoded) {
		return strings.ToLower(string(decoded))
	}

	return strings.ToLower(strings.ToValidUTF8(string(buf), ""))
}

// KeywordHitCount 统计文本命中的内置敏感关键词数量
// text 必须已转为小写（DecodeText 的输出）
func KeywordHitCount(textLower string) int {
	return rules.SensitiveKeywords.CountMatches(textLower)
}

// PatternHit 检查文本是否命中任一内置正则模式
// 按固定声明顺序匹配，返回首个命中模式的名称
func PatternHit(textLower string) (string, bool) {
	return rules.MatchAny(textLower)
}

// LearnedHit 检查文本是否包含任一学习到的上下文模式（子串匹配）
func LearnedHit(textLower string, learned []string) bool {
	for _, pattern := range learned {
		if pattern != "" && strings.Contains(textLower, pattern) {
			return true
		}
	}
	return false
}
