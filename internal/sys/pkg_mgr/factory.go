package pkg_mgr

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"
)

// readBatch 每次从目录句柄读取的条目数
const readBatch = 64

// DirReader 是按操作系统返回顺序逐批列出目录条目的来源
// *os.File 满足该接口
type DirReader interface {
	ReadDir(n int) ([]fs.DirEntry, error)
}

// Detect 扫描 dir 的直接子条目 (不递归)，返回第一个命中的包管理器
// 没有命中时返回 Unknown 和 nil
func Detect(dir string) (Kind, error) {
	f, err := os.Open(dir)
	if err != nil {
		return Unknown, fmt.Errorf("open directory %s: %w", dir, err)
	}
	defer f.Close()

	kind, err := DetectFrom(f)
	if err != nil {
		return Unknown, fmt.Errorf("read directory %s: %w", dir, err)
	}
	return kind, nil
}

// DetectFrom 按 r 给出的顺序检查条目，不做排序
// 多个 lockfile 同时存在时，以先出现者为准
func DetectFrom(r DirReader) (Kind, error) {
	for {
		entries, err := r.ReadDir(readBatch)
		for _, entry := range entries {
			name := entry.Name()
			// 无法作为文本解释的文件名直接跳过
			if !utf8.ValidString(name) {
				continue
			}
			if kind := KindForLockfile(name); kind != Unknown {
				return kind, nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Unknown, nil
			}
			return Unknown, err
		}
		if len(entries) == 0 {
			return Unknown, nil
		}
	}
}
