package scorer

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// ============================================================
// 单信号与组合信号评分
// ============================================================

func TestScore_各信号独立计分(t *testing.T) {
	s := New(nil)

	tests := []struct {
		name      string
		content   string
		learned   []string
		wantScore float64
	}{
		{
			name:      "无任何信号",
			content:   "hello world",
			wantScore: 0,
		},
		{
			name:      "单关键词",
			content:   "机密",
			wantScore: 0.1,
		},
		{
			name:      "四个关键词",
			content:   "密码 账号 机密 私密",
			wantScore: 0.4,
		},
		{
			name:      "关键词加正则模式",
			content:   "密码: 123456 信用卡 4111-1111-1111-1111",
			wantScore: 0.4, // 2 个关键词 0.2 + 模式 0.2
		},
		{
			name:      "学习模式命中",
			content:   "登录账号 admin 密码如下",
			learned:   []string{"账号 admin 密码"},
			wantScore: 0.5, // 2 个关键词 0.2 + 学习 0.3
		},
		{
			name:      "二进制标记出现在内容中",
			content:   "data %PDF data",
			wantScore: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.Score([]byte(tt.content), tt.learned)
			if !almostEqual(result.Score, tt.wantScore) {
				t.Errorf("Score = %v, 期望 %v (明细: %v)",
					result.Score, tt.wantScore, result.Details)
			}
		})
	}
}

func TestScore_关键词封顶(t *testing.T) {
	s := New(nil)

	// 8 个关键词只计 5 个
	content := "密码 账号 机密 私密 处方 疫苗 药物 支付"
	result := s.Score([]byte(content), nil)

	if result.KeywordHits != 8 {
		t.Errorf("KeywordHits = %d, 期望 8", result.KeywordHits)
	}
	if !almostEqual(result.Score, 0.5) {
		t.Errorf("封顶后得分 = %v, 期望 0.5 (明细: %v)", result.Score, result.Details)
	}
	if !almostEqual(result.Details["keywords"], 0.5) {
		t.Errorf("关键词明细 = %v, 期望 0.5", result.Details["keywords"])
	}
}

func TestScore_钳制到上限(t *testing.T) {
	s := New(nil)

	// 二进制标记 0.3 + 5 关键词 0.5 + 模式 0.2 + 学习 0.3 = 1.3 -> 1.0
	content := "PK 密码 账号 身份证 信用卡 机密 user@example.com"
	result := s.Score([]byte(content), []string{"密码 账号"})

	if !almostEqual(result.Score, 1.0) {
		t.Errorf("总分 = %v, 期望钳制为 1.0 (明细: %v)", result.Score, result.Details)
	}
}

func TestScore_得分始终在区间内(t *testing.T) {
	s := New(nil)

	contents := [][]byte{
		nil,
		[]byte(""),
		[]byte("plain"),
		[]byte("密码 账号 身份证 信用卡 机密 私密 处方 支付 订单 发票"),
		{0xFF, 0xFE, 0x00, 0x01},
		[]byte("PK\x03\x04 密码 4111-1111-1111-1111"),
	}

	for _, content := range contents {
		result := s.Score(content, []string{"密码 账号"})
		if result.Score < 0 || result.Score > 1 {
			t.Errorf("Score(%q) = %v, 超出 [0,1]", content, result.Score)
		}
	}
}

func TestScore_高熵信号(t *testing.T) {
	s := New(nil)

	// 256 种字节各出现 16 次，熵值 8 bit，超过 6.5 门限
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte((i * 7) % 256)
	}

	result := s.Score(buf, nil)
	if !almostEqual(result.Details["entropy"], 0.2) {
		t.Errorf("高熵内容应获得熵值加分，明细: %v", result.Details)
	}
	if result.Entropy <= 6.5 {
		t.Errorf("Entropy = %v, 期望 > 6.5", result.Entropy)
	}

	// 单一重复字节熵为 0，不加分
	flat := s.Score(make([]byte, 4096), nil)
	if _, ok := flat.Details["entropy"]; ok {
		t.Errorf("零熵内容不应获得熵值加分，明细: %v", flat.Details)
	}
}

func TestScore_信号单调性(t *testing.T) {
	s := New(nil)

	// 在已有信号上叠加新信号，得分不应下降
	base := s.Score([]byte("密码"), nil).Score
	more := s.Score([]byte("密码 账号"), nil).Score
	withPattern := s.Score([]byte("密码 账号 user@example.com"), nil).Score

	if more < base {
		t.Errorf("增加关键词后得分下降: %v -> %v", base, more)
	}
	if withPattern < more {
		t.Errorf("增加模式命中后得分下降: %v -> %v", more, withPattern)
	}
}

func TestScore_空内容(t *testing.T) {
	s := New(nil)

	result := s.Score(nil, []string{"密码 账号"})
	if result.Score != 0 {
		t.Errorf("空内容得分 = %v, 期望 0", result.Score)
	}
	if result.Entropy != 0 {
		t.Errorf("空内容熵值 = %v, 期望 0", result.Entropy)
	}
	if len(result.Details) != 0 {
		t.Errorf("空内容不应有任何明细: %v", result.Details)
	}
}

func TestScore_自定义权重(t *testing.T) {
	w := DefaultWeights()
	w.Keyword = 0.25
	w.KeywordCap = 2
	s := New(&w)

	// 3 个关键词按上限 2 计: 0.25 × 2 = 0.5
	result := s.Score([]byte("密码 账号 机密"), nil)
	if !almostEqual(result.Score, 0.5) {
		t.Errorf("自定义权重得分 = %v, 期望 0.5", result.Score)
	}
}

func TestScore_模式命中记录名称(t *testing.T) {
	s := New(nil)

	result := s.Score([]byte("contact: user@example.com"), nil)
	if result.PatternName != "email" {
		t.Errorf("PatternName = %q, 期望 %q", result.PatternName, "email")
	}
}
