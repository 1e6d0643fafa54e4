// Package signal 提供从字节缓冲区提取独立弱信号的纯函数
// 所有函数无副作用，不依赖可变全局状态
package signal

import (
	"bytes"
)

// 常见二进制容器格式的魔数
// ZIP/Office、PDF、JPEG、GIF、GZIP、BZIP2、7Z
var binaryMagics = [][]byte{
	[]byte("PK"),
	[]byte("%PDF"),
	{0xFF, 0xD8, 0xFF},
	[]byte("GIF89a"),
	{0x50, 0x4B, 0x03, 0x04},
	{0x1F, 0x8B, 0x08},
	{0x42, 0x5A, 0x68},
	{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C},
}

// IsKnownBinary 判断缓冲区是否以已知二进制容器格式的魔数开头
// 命中代表可信容器格式，分类器据此豁免内容评分
func IsKnownBinary(buf []byte) bool {
	for _, magic := range binaryMagics {
		if bytes.HasPrefix(buf, magic) {
			return true
		}
	}
	return false
}

// HasBinaryMarker 判断缓冲区任意位置是否出现已知魔数标记
// 与 IsKnownBinary 不同：这里是弱正向信号而非豁免条件，
// 文本中混入容器片段往往意味着内嵌附件或伪装内容
func HasBinaryMarker(buf []byte) bool {
	for _, magic := range binaryMagics {
		if bytes.Contains(buf, magic) {
			return true
		}
	}
	return false
}
