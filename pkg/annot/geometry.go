package annot

import (
	"fmt"
	"math"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DefaultPageHeight 页面缺少可用的 MediaBox 时使用的高度（A4）
const DefaultPageHeight = 842.0

// DefaultPageBox A4 页面框
var DefaultPageBox = PageBox{X0: 0, Y0: 0, X1: 595, Y1: 842}

// PageBox 页面框 [x0 y0 x1 y1]，PDF 原生坐标
type PageBox struct {
	X0, Y0, X1, Y1 float64
}

// Height 页面框高度
func (b PageBox) Height() float64 {
	return math.Abs(b.Y1 - b.Y0)
}

// Width 页面框宽度
func (b PageBox) Width() float64 {
	return math.Abs(b.X1 - b.X0)
}

// pageBox 只读取页面自身的 MediaBox，不沿页面树向上继承
func pageBox(r *Resolver, pageDict types.Dict) (PageBox, error) {
	obj, err := r.Lookup(pageDict, "MediaBox")
	if err != nil {
		return PageBox{}, err
	}
	nums, err := r.AsNumbers(obj)
	if err != nil {
		return PageBox{}, fmt.Errorf("/MediaBox: %w", err)
	}
	if len(nums) < 4 {
		return PageBox{}, fmt.Errorf("/MediaBox has %d entries: %w", len(nums), ErrTypeMismatch)
	}
	return PageBox{X0: nums[0], Y0: nums[1], X1: nums[2], Y1: nums[3]}, nil
}

// pageHeight 计算页面高度，任何异常都回退到 DefaultPageHeight
func pageHeight(r *Resolver, pageDict types.Dict) float64 {
	box, err := pageBox(r, pageDict)
	if err != nil {
		return DefaultPageHeight
	}
	h := box.Height()
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return DefaultPageHeight
	}
	return h
}
