package annot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// tempFilePrefix 原子保存时使用的临时文件前缀
const tempFilePrefix = ".pdfnote-tmp-"

// Document 是一次加载得到的内存文档，不在调用之间保留
type Document struct {
	path     string
	ctx      *model.Context
	resolver *Resolver
}

// OpenFile 从文件路径加载文档。
// 只解析交叉引用表与对象，不做 pdfcpu 的结构校验：单个注释或页面的问题
// 由 Resolver 在读写时逐条跳过，不会让整个文档加载失败。
func OpenFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentLoadError{Path: path, Err: err}
	}
	defer f.Close()

	ctx, err := readContext(f)
	if err != nil {
		return nil, &DocumentLoadError{Path: path, Err: err}
	}
	return newDocument(path, ctx), nil
}

// OpenBytes 从内存缓冲区加载文档，规则同 OpenFile
func OpenBytes(data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, &DocumentLoadError{Err: errors.New("empty input")}
	}
	ctx, err := readContext(bytes.NewReader(data))
	if err != nil {
		return nil, &DocumentLoadError{Err: err}
	}
	return newDocument("", ctx), nil
}

// readContext 读取文档并统计页数。
// model.NewDefaultConfiguration 会读取或创建用户的 pdfcpu 配置目录，
// 除非进程先调用了 api.DisableConfigDir。
func readContext(rs io.ReadSeeker) (*model.Context, error) {
	ctx, err := api.ReadContext(rs, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	// 未经校验时 PageCount 不会被填充
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("page tree: %w", err)
	}
	return ctx, nil
}

func newDocument(path string, ctx *model.Context) *Document {
	return &Document{path: path, ctx: ctx, resolver: NewResolver(ctx)}
}

// Path 返回文档来源路径，内存文档为空
func (d *Document) Path() string {
	return d.path
}

// Resolver 返回绑定到本文档的解析器
func (d *Document) Resolver() *Resolver {
	return d.resolver
}

// PageCount 返回页数
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Page 返回第 index 页（从 0 开始）的页面字典。
// 返回的字典与对象表共享，修改会直接反映到文档中。
func (d *Document) Page(index int) (types.Dict, error) {
	if index < 0 || index >= d.PageCount() {
		return nil, fmt.Errorf("page %d out of range (total pages: %d)", index, d.PageCount())
	}
	pageDict, _, _, err := d.ctx.PageDict(index+1, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("page %d: %w", index, &TypeMismatchError{Want: "dict", Got: "<nil>"})
	}
	return pageDict, nil
}

// addObject 将对象登记为新的间接对象并返回引用
func (d *Document) addObject(obj types.Object) (types.IndirectRef, error) {
	ref, err := d.ctx.IndRefForNewObject(obj)
	if err != nil {
		return types.IndirectRef{}, err
	}
	return *ref, nil
}

// Serialize 将文档序列化到 w
func (d *Document) Serialize(w io.Writer) error {
	if err := api.WriteContext(d.ctx, w); err != nil {
		return &PersistError{Path: d.path, Err: err}
	}
	return nil
}

// Bytes 将文档序列化到内存缓冲区
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile 将文档保存到 path：先写同目录临时文件，再重命名覆盖，
// 读者永远不会看到写了一半的文件。
func (d *Document) SaveFile(path string) error {
	if err := d.saveAtomic(path); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

func (d *Document) saveAtomic(path string) error {
	perm := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		perm = fi.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := api.WriteContext(d.ctx, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write pdf: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
