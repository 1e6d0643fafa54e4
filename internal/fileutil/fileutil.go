// Package fileutil 提供目录枚举与受限读取工具
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
)

// DefaultHeadSize 内容分析默认只读取文件头部字节数
const DefaultHeadSize = 4096

// ListFiles 枚举目录下的普通文件（单层，不递归），跳过隐藏文件
// 返回绝对路径，os.ReadDir 保证目录序稳定
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		absPath, err := filepath.Abs(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, absPath)
	}

	return files, nil
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// ReadHead 读取文件头部至多 size 字节
func ReadHead(path string, size int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, size)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	return head[:n], nil
}

// TypeLabel 根据文件头内容推断文件类型扩展名
// 无法识别时返回 "unknown"，仅用于结果记录，不参与判定
func TypeLabel(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return "unknown"
	}
	return kind.Extension
}
