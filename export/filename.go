// Package export 负责输出文件的命名与写入。
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPrefix 是默认文件名前缀。
const DefaultPrefix = "金句卡片"

// DateString 返回 "YYYY.MM.DD" 形式的日期，用于卡片页脚与文件名。
func DateString(t time.Time) string {
	return t.Format("2006.01.02")
}

// FileName 返回 prefix_YYYY.MM.DD.ext 形式的文件名；ext 可带或不带点。
func FileName(prefix string, t time.Time, ext string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf("%s_%s%s", prefix, DateString(t), ext)
}

// Namer 在一次运行内为重复的路径追加 _02、_03… 序号。
type Namer struct {
	mu   sync.Mutex
	seen map[string]int
}

// NewNamer 创建 Namer。
func NewNamer() *Namer {
	return &Namer{seen: map[string]int{}}
}

// Next 返回 path 在本次运行中的唯一版本。首次出现原样返回。
func (n *Namer) Next(path string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen[path]++
	count := n.seen[path]
	if count == 1 {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for {
		candidate := fmt.Sprintf("%s_%02d%s", base, count, ext)
		if n.seen[candidate] == 0 {
			n.seen[candidate] = 1
			return candidate
		}
		count++
	}
}

// EnsureDir 创建 path 所在目录（等价于 mkdir -p），目录已存在时无操作。
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// Write 创建所需目录后写入文件。
func Write(path string, data []byte) error {
	if err := EnsureDir(path); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}
