// Package measure 提供基于 golang.org/x/image 字形度量的文本测量实现，不需要创建画布。
package measure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/ByLCY/quotecard/fonts"
	"github.com/ByLCY/quotecard/layout"
)

// OpenType 使用 golang.org/x/image 的字形前进宽度测量文本。
// 以 72 DPI 创建字体面，此时字号（pt）与逻辑像素一一对应。
type OpenType struct {
	baseDir string

	fallbackOnce sync.Once
	fallbackSrc  string

	mu    sync.Mutex
	fonts map[string]*opentype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	src  string
	size float64
}

var _ layout.Measurer = (*OpenType)(nil)

// NewOpenType 创建测量器，相对字体路径以 baseDir 为根。
func NewOpenType(baseDir string) *OpenType {
	return &OpenType{
		baseDir: baseDir,
		fonts:   map[string]*opentype.Font{},
		faces:   map[faceKey]font.Face{},
	}
}

// MeasureText 实现 layout.Measurer；未指定字体时使用系统中文字体，
// 字体无法加载时退回内置字体，仍失败则估算。
func (o *OpenType) MeasureText(content string, fontSize float64, res layout.FontResource) float64 {
	src := res.Src
	if src == "" {
		src = o.fallback()
	}
	face, err := o.face(src, fontSize)
	if err != nil && src != o.fallback() {
		face, err = o.face(o.fallback(), fontSize)
	}
	if err != nil {
		face, err = o.face("embed:"+fonts.Default, fontSize)
	}
	if err != nil {
		return layout.EstimateTextWidth(content, fontSize)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	adv := font.MeasureString(face, content)
	return float64(adv) / 64
}

// Close 释放缓存的字体面。
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	var firstErr error
	for key, face := range o.faces {
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(o.faces, key)
	}
	return firstErr
}

// fallback 返回后备字体来源：fonts.SystemFallbacks 中第一个存在的系统字体，否则为内置字体。
func (o *OpenType) fallback() string {
	o.fallbackOnce.Do(func() {
		o.fallbackSrc = "embed:" + fonts.Default
		if name, _, ok := fonts.FindSystem(fonts.SystemFallbacks); ok {
			o.fallbackSrc = fonts.SystemPrefix + name
		}
	})
	return o.fallbackSrc
}

func (o *OpenType) face(src string, size float64) (font.Face, error) {
	key := faceKey{src: src, size: size}

	o.mu.Lock()
	defer o.mu.Unlock()
	if face, ok := o.faces[key]; ok {
		return face, nil
	}
	f, ok := o.fonts[src]
	if !ok {
		data, err := o.load(src)
		if err != nil {
			return nil, err
		}
		f, err = parseFont(data)
		if err != nil {
			return nil, fmt.Errorf("解析字体 %s 失败: %w", src, err)
		}
		o.fonts[src] = f
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体面 %s@%g 失败: %w", src, size, err)
	}
	o.faces[key] = face
	return face, nil
}

func (o *OpenType) load(src string) ([]byte, error) {
	if strings.HasPrefix(src, "embed:") {
		return fonts.Load(src)
	}
	if name, ok := strings.CutPrefix(src, fonts.SystemPrefix); ok {
		_, path, found := fonts.FindSystem([]string{name})
		if !found {
			return nil, fmt.Errorf("找不到系统字体 %s", name)
		}
		return os.ReadFile(path)
	}
	path := src
	if !filepath.IsAbs(path) && o.baseDir != "" {
		path = filepath.Join(o.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

// parseFont 解析单个字体文件，字体集合（.ttc）取第一个字体。
func parseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err == nil {
		return f, nil
	}
	coll, collErr := opentype.ParseCollection(data)
	if collErr != nil {
		return nil, err
	}
	return coll.Font(0)
}
