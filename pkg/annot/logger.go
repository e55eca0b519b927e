package annot

import (
	"io"
	"log/slog"
	"sync"
)

var (
	loggerMu      sync.RWMutex
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Logger 返回包级默认日志记录器，默认丢弃所有输出
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// SetLogger 设置包级默认日志记录器，nil 恢复为静默
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	defaultLogger = l
}

// Skip 记录一次被跳过的页面或注释
type Skip struct {
	Page   int    `json:"page"`
	Index  int    `json:"index"` // 页面 Annots 中的下标；整页跳过时为 -1
	Reason string `json:"reason"`
}

// skipLog 收集跳过事件并同步输出调试日志
type skipLog struct {
	logger *slog.Logger
	op     string
	items  []Skip
}

func newSkipLog(logger *slog.Logger, op string) *skipLog {
	if logger == nil {
		logger = Logger()
	}
	return &skipLog{logger: logger, op: op}
}

func (s *skipLog) add(page, index int, err error) {
	s.items = append(s.items, Skip{Page: page, Index: index, Reason: err.Error()})
	s.logger.Debug("skipped", "op", s.op, "page", page, "index", index, "reason", err)
}
