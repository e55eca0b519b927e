// Package pdftest 生成测试用的最小 PDF 文件。
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// A4MediaBox 默认页面框条目
const A4MediaBox = "/MediaBox [0 0 595 842]"

// Fixture 描述一个最小 PDF，xref 偏移量按实际内容计算。
// 对象编号：1 为 Catalog，2 为 Pages，3.. 为各页面，其后为额外对象。
type Fixture struct {
	pages      []string
	pagesExtra string
	objects    []string
}

// New 创建含 pages 个 A4 空白页的 fixture
func New(pages int) *Fixture {
	f := &Fixture{pages: make([]string, pages)}
	for i := range f.pages {
		f.pages[i] = A4MediaBox
	}
	return f
}

// Page 设置第 i 页的附加条目（替换默认的 MediaBox）
func (f *Fixture) Page(i int, entries string) *Fixture {
	f.pages[i] = entries
	return f
}

// Inherit 设置 Pages 根节点的附加条目
func (f *Fixture) Inherit(entries string) *Fixture {
	f.pagesExtra = entries
	return f
}

// Object 追加一个间接对象并返回其编号
func (f *Fixture) Object(body string) int {
	f.objects = append(f.objects, body)
	return len(f.pages) + 2 + len(f.objects)
}

// Bytes 生成完整的 PDF 字节
func (f *Fixture) Bytes() []byte {
	kids := make([]string, len(f.pages))
	for i := range f.pages {
		kids[i] = fmt.Sprintf("%d 0 R", i+3)
	}

	bodies := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d %s >>", strings.Join(kids, " "), len(f.pages), f.pagesExtra),
	}
	for _, extra := range f.pages {
		bodies = append(bodies, fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << >> %s >>", extra))
	}
	bodies = append(bodies, f.objects...)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	offsets := make([]int, len(bodies))
	for i, body := range bodies {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(bodies)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(bodies)+1, xref)
	return buf.Bytes()
}

// File 将 fixture 写入测试临时目录并返回路径
func (f *Fixture) File(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// FreeText 生成自由文本注释字典
func FreeText(contents, da, rect string) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /FreeText /Contents %s /DA %s /Rect %s >>", contents, da, rect)
}
