package fonts

import (
	"strings"

	"github.com/tdewolff/canvas"
)

// SystemPrefix 标记按字体族名从系统字体目录加载，例如 "system:STKaiti"。
const SystemPrefix = "system:"

// SystemFallbacks 是未指定字体时依次尝试的系统字体，行楷优先，其后是常见的中文无衬线字体。
// 都找不到时才使用内置的 Go 字体，它不含中文字形。
var SystemFallbacks = []string{
	"STXingkai",
	"华文行楷",
	"Noto Sans CJK SC",
	"Source Han Sans SC",
	"PingFang SC",
	"Microsoft YaHei",
	"WenQuanYi Micro Hei",
	"WenQuanYi Zen Hei",
}

// FindSystem 返回 names 中第一个在系统中存在的字体族名及其文件路径。
func FindSystem(names []string) (name, path string, ok bool) {
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if p, found := canvas.FindSystemFont(n, canvas.FontRegular); found {
			return n, p, true
		}
	}
	return "", "", false
}
