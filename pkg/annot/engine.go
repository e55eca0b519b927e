package annot

import (
	"log/slog"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Engine 是宿主程序使用的注释读写入口。
// 不在调用之间保留文档状态，每次调用都重新解析文件。
type Engine struct {
	logger *slog.Logger
	locks  *pathLocks
}

// Option 配置 Engine
type Option func(*Engine)

// WithLogger 设置日志记录器
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPathLocking 是否按路径串行化同一文件上的调用，默认开启
func WithPathLocking(enabled bool) Option {
	return func(e *Engine) {
		if enabled {
			e.locks = newPathLocks()
		} else {
			e.locks = nil
		}
	}
}

// NewEngine 创建 Engine。
// 加载文档使用 pdfcpu 默认配置，会读取或创建用户的 pdfcpu 配置目录；
// 作为库嵌入时如不需要，应在创建前调用 api.DisableConfigDir。
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: Logger(),
		locks:  newPathLocks(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) lock(path string) func() {
	if e.locks == nil {
		return func() {}
	}
	return e.locks.lock(path)
}

// ReadAnnotations 读取 path 中的全部自由文本注释
func (e *Engine) ReadAnnotations(path string) ([]Record, error) {
	report, err := e.Read(path)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

// WriteAnnotations 用 records 替换 path 中的全部注释并保存
func (e *Engine) WriteAnnotations(path string, records []Record) error {
	_, err := e.Write(path, records)
	return err
}

// Read 与 ReadAnnotations 相同，但附带被跳过条目的报告
func (e *Engine) Read(path string) (ReadReport, error) {
	unlock := e.lock(path)
	defer unlock()

	start := time.Now()
	doc, err := OpenFile(path)
	if err != nil {
		e.logger.Error("open document", "path", path, "error", err)
		return ReadReport{}, err
	}

	report := ReadDocument(doc, e.logger)
	e.logger.Info("annotations read",
		"path", path,
		"pages", doc.PageCount(),
		"records", len(report.Records),
		"skipped", len(report.Skipped),
		"dur", time.Since(start))
	return report, nil
}

// Write 与 WriteAnnotations 相同，但附带被跳过条目的报告
func (e *Engine) Write(path string, records []Record) (WriteReport, error) {
	if err := ValidateRecords(records); err != nil {
		return WriteReport{}, err
	}

	unlock := e.lock(path)
	defer unlock()

	start := time.Now()
	doc, err := OpenFile(path)
	if err != nil {
		e.logger.Error("open document", "path", path, "error", err)
		return WriteReport{}, err
	}

	report := WriteDocument(doc, records, e.logger)

	if err := doc.SaveFile(path); err != nil {
		e.logger.Error("save document", "path", path, "error", err)
		return report, err
	}
	e.logger.Info("annotations written",
		"path", path,
		"records", len(records),
		"written", report.Written,
		"skipped", len(report.Skipped),
		"dur", time.Since(start))
	return report, nil
}

// StripAnnotations 返回去掉所有页面 Annots 后的文档字节，供预览渲染使用。
// 注释只通过编辑层显示，避免预览中重复出现。磁盘上的文件不会被修改。
func (e *Engine) StripAnnotations(path string) ([]byte, error) {
	unlock := e.lock(path)
	defer unlock()

	doc, err := OpenFile(path)
	if err != nil {
		e.logger.Error("open document", "path", path, "error", err)
		return nil, err
	}

	stripped := StripDocument(doc, e.logger)
	e.logger.Debug("annotations stripped", "path", path, "pages", stripped)

	return doc.Bytes()
}

// StripDocument 删除每一页的 Annots，返回实际被修改的页数
func StripDocument(doc *Document, logger *slog.Logger) int {
	skips := newSkipLog(logger, "strip")
	stripped := 0
	for page := 0; page < doc.PageCount(); page++ {
		pageDict, err := doc.Page(page)
		if err != nil {
			skips.add(page, -1, err)
			continue
		}
		if removeEntry(pageDict, "Annots") {
			stripped++
		}
	}
	return stripped
}

func removeEntry(d types.Dict, key string) bool {
	if _, found := d.Find(key); !found {
		return false
	}
	delete(d, key)
	return true
}
