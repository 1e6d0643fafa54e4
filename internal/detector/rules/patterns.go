package rules

import (
	"regexp"
)

// Pattern 表示一个命名正则模式
type Pattern struct {
	Name        string         // 模式名称
	Regex       *regexp.Regexp // 编译后的正则表达式
	Description string         // 描述
}

// Match 检查文本是否匹配该模式
func (p *Pattern) Match(text string) bool {
	return p.Regex.MatchString(text)
}

// FindString 查找第一个匹配的字符串
func (p *Pattern) FindString(text string) string {
	return p.Regex.FindString(text)
}

// ==========================================
// 内置敏感数据模式
// ==========================================

// IDCardPattern 居民身份证号
var IDCardPattern = &Pattern{
	Name:        "id_card",
	Regex:       regexp.MustCompile(`[1-9]\d{5}(?:19|20)\d{2}(?:0[1-9]|1[0-2])(?:0[1-9]|[12]\d|3[01])\d{3}[\dXx]`),
	Description: "18位居民身份证号码",
}

// PhonePattern 手机号
var PhonePattern = &Pattern{
	Name:        "phone",
	Regex:       regexp.MustCompile(`(?:13[0-9]|14[01456879]|15[0-35-9]|16[2567]|17[0-8]|18[0-9]|19[0-35-9])\d{8}`),
	Description: "大陆手机号码",
}

// EmailPattern 电子邮箱
var EmailPattern = &Pattern{
	Name:        "email",
	Regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	Description: "电子邮箱地址",
}

// IPPattern IPv4 地址
var IPPattern = &Pattern{
	Name:        "ip",
	Regex:       regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`),
	Description: "IPv4地址",
}

// CreditCardPattern 银行卡号
var CreditCardPattern = &Pattern{
	Name:        "credit_card",
	Regex:       regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`),
	Description: "16位银行卡/信用卡号",
}

// PricePattern 价格
var PricePattern = &Pattern{
	Name:        "price",
	Regex:       regexp.MustCompile(`[￥$€¥]?\d{1,3}(?:,\d{3})*(?:\.\d{2})?`),
	Description: "带币种符号的价格",
}

// AmountPattern 金额
var AmountPattern = &Pattern{
	Name:        "amount",
	Regex:       regexp.MustCompile(`[￥$€¥]?\d+(?:,\d{3})*(?:\.\d+)?`),
	Description: "金额数字",
}

// TotalPricePattern 总价
var TotalPricePattern = &Pattern{
	Name:        "total_price",
	Regex:       regexp.MustCompile(`总价[:：]?\s?[￥$€¥]?\d{1,3}(?:,\d{3})*(?:\.\d{2})?`),
	Description: "总价字段",
}

// MedicalRecordPattern 病历号
var MedicalRecordPattern = &Pattern{
	Name:        "medical_record",
	Regex:       regexp.MustCompile(`\b[1-9][0-9]{5,8}\b`),
	Description: "病历号",
}

// DrugNamePattern 药品名称
var DrugNamePattern = &Pattern{
	Name:        "drug_name",
	Regex:       regexp.MustCompile(`(?i)(?:阿莫西林|布洛芬|头孢|利巴韦林|双氯芬酸|维生素c)`),
	Description: "常见药品名称",
}

// HospitalPattern 医院信息
var HospitalPattern = &Pattern{
	Name:        "hospital",
	Regex:       regexp.MustCompile(`医院[:：]?[^\s]+`),
	Description: "医院名称字段",
}

// MedicalConditionPattern 疾病名称
var MedicalConditionPattern = &Pattern{
	Name:        "medical_condition",
	Regex:       regexp.MustCompile(`(?i)(?:糖尿病|高血压|冠心病|肺结核|癌症)`),
	Description: "常见疾病名称",
}

// PurchaseRecordPattern 购买记录
var PurchaseRecordPattern = &Pattern{
	Name:        "purchase_record",
	Regex:       regexp.MustCompile(`购买时间[:：]?\d{4}[-/]\d{1,2}[-/]\d{1,2}`),
	Description: "购买时间记录",
}

// OrderNumberPattern 订单号
var OrderNumberPattern = &Pattern{
	Name:        "order_number",
	Regex:       regexp.MustCompile(`\b[0-9A-Za-z]{10,20}\b`),
	Description: "订单编号",
}

// PaymentMethodPattern 支付方式
var PaymentMethodPattern = &Pattern{
	Name:        "payment_method",
	Regex:       regexp.MustCompile(`支付方式[:：]?[^\s]+`),
	Description: "支付方式字段",
}

// TransactionIDPattern 交易ID
var TransactionIDPattern = &Pattern{
	Name:        "transaction_id",
	Regex:       regexp.MustCompile(`\b[0-9A-Fa-f]{32}\b`),
	Description: "32位十六进制交易ID",
}

// SensitivePatterns 所有内置模式
// 声明顺序即匹配顺序，保证首个命中结果可复现
var SensitivePatterns = []*Pattern{
	IDCardPattern,
	PhonePattern,
	EmailPattern,
	IPPattern,
	CreditCardPattern,
	PricePattern,
	AmountPattern,
	TotalPricePattern,
	MedicalRecordPattern,
	DrugNamePattern,
	HospitalPattern,
	MedicalConditionPattern,
	PurchaseRecordPattern,
	OrderNumberPattern,
	PaymentMethodPattern,
	TransactionIDPattern,
}

// MatchAny 按声明顺序查找第一个命中的模式
// 返回命中模式的名称；未命中时返回空串
func MatchAny(text string) (string, bool) {
	for _, p := range SensitivePatterns {
		if p.Match(text) {
			return p.Name, true
		}
	}
	return "", false
}
