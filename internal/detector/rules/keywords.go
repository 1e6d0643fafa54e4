// Package rules 定义敏感内容检测的内置规则集
// 关键词与正则模式在构建期固定，运行期只读
package rules

import (
	"strings"
)

// KeywordSet 关键词集合
type KeywordSet struct {
	Name        string
	Keywords    []string
	Description string

	index map[string]struct{}
}

// newKeywordSet 构建带索引的关键词集合
// 关键词统一按小写存储，匹配前调用方需先将文本转为小写
func newKeywordSet(name, description string, keywords []string) *KeywordSet {
	ks := &KeywordSet{
		Name:        name,
		Keywords:    keywords,
		Description: description,
		index:       make(map[string]struct{}, len(keywords)),
	}
	for _, kw := range keywords {
		ks.index[strings.ToLower(kw)] = struct{}{}
	}
	return ks
}

// CountMatches 统计文本中出现的关键词数量（子串匹配，每个关键词至多计一次）
func (ks *KeywordSet) CountMatches(textLower string) int {
	count := 0
	for _, kw := range ks.Keywords {
		if strings.Contains(textLower, kw) {
			count++
		}
	}
	return count
}

// Contains 检查文本是否包含任一关键词
func (ks *KeywordSet) Contains(textLower string) bool {
	for _, kw := range ks.Keywords {
		if strings.Contains(textLower, kw) {
			return true
		}
	}
	return false
}

// HasWord 检查单个词是否恰好是一个关键词（整词匹配，用于学习时的上下文提取）
func (ks *KeywordSet) HasWord(word string) bool {
	_, ok := ks.index[word]
	return ok
}

// Size 返回关键词数量
func (ks *KeywordSet) Size() int {
	return len(ks.Keywords)
}

// ==========================================
// 敏感关键词
// ==========================================

// SensitiveKeywords 敏感内容关键词集合
// 覆盖凭证、身份、财务、医疗、交易五类高风险词汇
var SensitiveKeywords = newKeywordSet("敏感关键词", "敏感内容特征词", []string{
	// 凭证与身份
	"密码", "password", "账号", "account",
	"身份证", "id card", "信用卡", "credit card",
	"私密", "private", "机密", "confidential",
	"secret", "sensitive", "internal", "restricted",
	"token", "key", "auth", "certificate",

	// 财务金额
	"价格", "金额", "total price", "price", "cost", "amount", "total", "费用", "payment",
	"人民币", "美元", "欧元", "￥", "$", "€", "¥", "总价", "账单", "发票", "付款",

	// 医疗健康
	"病历号", "药品", "医生", "医疗", "诊断", "病例", "手术", "医院", "住院", "病床",
	"治疗", "健康", "疾病", "糖尿病", "高血压", "冠心病", "癌症", "肺结核", "骨折",
	"药品名称", "处方", "医疗记录", "疫苗", "药物", "医生姓名", "病人信息",

	// 交易订单
	"购买时间", "订单号", "支付方式", "交易id", "支付", "购买", "订单", "发货", "物流",
	"发票号", "支付平台", "购物", "购物车", "支付状态", "支付金额",
})
