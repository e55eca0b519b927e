// Package annot 在可移植的注释记录与 PDF 自由文本注释之间双向映射。
package annot

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

const (
	// SubtypeFreeText 自由文本注释的子类型名称
	SubtypeFreeText = "FreeText"

	// DefaultFontSize 记录未指定字号时写入的字号
	DefaultFontSize = 14.0

	// BoxWidth 注释框的固定宽度，不测量文本实际宽度
	BoxWidth = 200.0

	// BoxHeightFactor 注释框高度 = 字号 * BoxHeightFactor
	BoxHeightFactor = 1.5

	// FontResource DA 中引用的字体资源名
	FontResource = "Helv"
)

// Record 表示一个可移植的自由文本注释。
// Page 从 0 开始；X/Y 位于左上角原点的页面空间，Y 始终是文本的上边缘。
type Record struct {
	Page     int      `json:"page"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Content  string   `json:"content"`
	FontSize *float64 `json:"fontSize,omitempty"`
}

// FontSizeOrDefault 返回记录字号，缺省时返回 DefaultFontSize
func (r Record) FontSizeOrDefault() float64 {
	if r.FontSize == nil {
		return DefaultFontSize
	}
	return *r.FontSize
}

// Validate 检查记录能否写入文档
func (r Record) Validate() error {
	if r.Page < 0 {
		return fmt.Errorf("%w: negative page %d", ErrInvalidRecord, r.Page)
	}
	if !finite(r.X) || !finite(r.Y) {
		return fmt.Errorf("%w: non-finite position (%v, %v)", ErrInvalidRecord, r.X, r.Y)
	}
	if r.FontSize != nil && (!finite(*r.FontSize) || *r.FontSize <= 0) {
		return fmt.Errorf("%w: font size must be positive, got %v", ErrInvalidRecord, *r.FontSize)
	}
	return nil
}

// ValidateRecords 校验整个记录集，返回第一个错误
func ValidateRecords(records []Record) error {
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// FontSize 返回指向 v 的指针，便于构造 Record
func FontSize(v float64) *float64 {
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NoteRect 根据调用方坐标生成原生 Rect [x, top-1.5*size, x+200, top]
func NoteRect(x, nativeTop, fontSize float64) [4]float64 {
	return [4]float64{x, nativeTop - BoxHeightFactor*fontSize, x + BoxWidth, nativeTop}
}

// FormatDA 生成默认外观字符串：黑色填充，固定字体资源 Helv
func FormatDA(fontSize float64) string {
	return fmt.Sprintf("0 0 0 rg /%s %s Tf", FontResource, strconv.FormatFloat(fontSize, 'f', -1, 64))
}

// ParseFontSize 从 DA 字符串中取 Tf 操作符前的字号。
// 找不到或无法解析时返回 nil，不视为错误。
func ParseFontSize(da string) *float64 {
	tokens := strings.Fields(da)
	for i, tok := range tokens {
		if tok != "Tf" || i == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(tokens[i-1], 64); err == nil {
			return &v
		}
	}
	return nil
}

var utf16BOM = []byte{0xFE, 0xFF}

// DecodeText 将 Contents 字节解码为 UTF-8 文本。
// 带 UTF-16BE BOM 的按 UTF-16 解码，其余按 UTF-8 解码并替换非法序列，永不失败。
func DecodeText(b []byte) string {
	if bytes.HasPrefix(b, utf16BOM) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if out, err := dec.Bytes(b); err == nil {
			return string(out)
		}
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
