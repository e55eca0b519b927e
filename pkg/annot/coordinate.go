package annot

// 坐标系统：
//   PDF 原生空间：原点在页面框左下角，Y 轴向上
//   调用方空间：原点在页面框左上角，Y 轴向下
// 水平方向两者一致，只需翻转 Y 轴。

// ToCallerSpace 将 PDF 原生 Y 坐标转换为调用方（左上角原点）Y 坐标
func ToCallerSpace(pageHeight, pdfTopY float64) float64 {
	return pageHeight - pdfTopY
}

// ToNativeSpace 将调用方 Y 坐标转换为 PDF 原生 Y 坐标
func ToNativeSpace(pageHeight, callerY float64) float64 {
	return pageHeight - callerY
}

// CoordinateConverter 绑定单个页面高度的坐标转换器。
// 读写同一页面时必须使用同一页面的高度，否则位置无法恢复。
type CoordinateConverter struct {
	pageHeight float64
}

// NewCoordinateConverter 创建坐标转换器
func NewCoordinateConverter(pageHeight float64) CoordinateConverter {
	return CoordinateConverter{pageHeight: pageHeight}
}

// PageHeight 返回转换器绑定的页面高度
func (c CoordinateConverter) PageHeight() float64 {
	return c.pageHeight
}

// PDFToCaller 将 PDF 坐标转换为调用方坐标
func (c CoordinateConverter) PDFToCaller(x, y float64) (float64, float64) {
	return x, ToCallerSpace(c.pageHeight, y)
}

// CallerToPDF 将调用方坐标转换为 PDF 坐标
func (c CoordinateConverter) CallerToPDF(x, y float64) (float64, float64) {
	return x, ToNativeSpace(c.pageHeight, y)
}
