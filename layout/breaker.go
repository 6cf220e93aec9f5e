package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const shortLineLimit = 8 // 不超过 8 个字且无逗号时保持一行

var (
	commaSplitter = regexp.MustCompile(`[，,]`)
	fourCharRun   = regexp.MustCompile(`.{4}`)
)

// parallelPattern 描述一种对仗句式：match 判断整句是否符合，split 给出分行。
type parallelPattern struct {
	name  string
	match func(text string) bool
	split func(text string) []string
}

var parallelPatterns = []parallelPattern{
	{
		// 少壮不努力，老大徒伤悲
		name:  "bu-tu",
		match: regexp.MustCompile(`^(.+不.+)[，,](.+徒.+)$`).MatchString,
		split: firstTwoSegments,
	},
	{
		// 天行健，君子以自强不息
		name: "tian-di",
		match: func(text string) bool {
			return tianClause.MatchString(text) || diClause.MatchString(text)
		},
		split: firstTwoSegments,
	},
	{
		// 四字 + 四字
		name: "four-four",
		match: func(text string) bool {
			parts := commaSplitter.Split(text, -1)
			return len(parts) == 2 && utf8.RuneCountInString(parts[0]) == 4 && utf8.RuneCountInString(parts[1]) == 4
		},
		split: func(text string) []string { return trimAll(commaSplitter.Split(text, -1)) },
	},
}

var (
	tianClause = regexp.MustCompile(`^(天.+)[，,](.+)$`)
	diClause   = regexp.MustCompile(`^(地.+)[，,](.+)$`)
)

// BreakLines 将短句拆分为展示行。
//
// 含逗号时优先匹配对仗句式，否则按逗号拆分（可能超过两行）；
// 不含逗号时，短句保持一行，长句尝试对半或按四字一组拆成两行。
func BreakLines(text string) []string {
	if strings.ContainsAny(text, "，,") {
		return breakOnCommas(text)
	}
	return breakPlain(text)
}

func breakOnCommas(text string) []string {
	for _, p := range parallelPatterns {
		if !p.match(text) {
			continue
		}
		if lines := p.split(text); !hasEmpty(lines) {
			logger().Debug("对仗句式命中", "pattern", p.name)
			return lines
		}
	}
	var lines []string
	for _, seg := range commaSplitter.Split(text, -1) {
		if seg = strings.TrimSpace(seg); seg == "" {
			continue
		}
		lines = append(lines, seg)
	}
	if len(lines) == 0 {
		// 全是逗号时原样输出，保证至少一行
		return []string{text}
	}
	return lines
}

func breakPlain(text string) []string {
	runes := []rune(text)
	if len(runes) <= shortLineLimit {
		return []string{text}
	}

	mid := len(runes) / 2
	first, second := string(runes[:mid]), string(runes[mid:])
	if (strings.Contains(first, "不") && strings.Contains(second, "徒")) ||
		(strings.Contains(first, "天") && strings.Contains(second, "地")) ||
		mid == len(runes)-mid {
		return []string{first, second}
	}

	// 奇数长度且无关键字：按四字一组，在组数一半处断开
	units := fourCharRun.FindAllString(text, -1)
	if len(units) >= 2 {
		cut := len(units) / 2 * 4
		return []string{string(runes[:cut]), string(runes[cut:])}
	}
	return []string{text}
}

// firstTwoSegments 在第一个逗号处断开，第二行保留其后的全部内容（含其余逗号），
// 保证多逗号句子不丢字。
func firstTwoSegments(text string) []string {
	parts := commaSplitter.Split(text, 2)
	return trimAll([]string{parts[0], parts[1]})
}

// trimAll 去掉逗号两侧的空白（英文逗号后常跟空格）。
func trimAll(parts []string) []string {
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func hasEmpty(lines []string) bool {
	for _, l := range lines {
		if l == "" {
			return true
		}
	}
	return false
}
