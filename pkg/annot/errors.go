package annot

import (
	"errors"
	"fmt"
	"os"
)

// 哨兵错误，调用方通过 errors.Is 判断类别
var (
	ErrDocumentLoad  = errors.New("annot: document load failed")
	ErrResolution    = errors.New("annot: unresolvable reference")
	ErrTypeMismatch  = errors.New("annot: unexpected object type")
	ErrMissingKey    = errors.New("annot: missing dictionary key")
	ErrPersist       = errors.New("annot: persist failed")
	ErrInvalidRecord = errors.New("annot: invalid record")

	ErrUnsupportedSubtype = errors.New("annot: not a free-text annotation")
)

// DocumentLoadError 表示文档无法打开、读取或解析
type DocumentLoadError struct {
	Path string
	Err  error
}

func (e *DocumentLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load document: %v", e.Err)
	}
	return fmt.Sprintf("load document %s: %v", e.Path, e.Err)
}

func (e *DocumentLoadError) Unwrap() []error { return []error{ErrDocumentLoad, e.Err} }

// ResolutionError 表示间接引用指向不存在的对象
type ResolutionError struct {
	ObjectNumber     int
	GenerationNumber int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("object %d %d R does not resolve", e.ObjectNumber, e.GenerationNumber)
}

func (e *ResolutionError) Is(target error) bool { return target == ErrResolution }

// TypeMismatchError 表示对象不是期望的形状
type TypeMismatchError struct {
	Want string
	Got  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// PersistError 表示最终写盘失败
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("persist document: %v", e.Err)
	}
	return fmt.Sprintf("persist document %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() []error { return []error{ErrPersist, e.Err} }

// Kind 是错误的最小分类，供宿主程序展示
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindLoad         Kind = "load"
	KindPersist      Kind = "persist"
	KindInvalidInput Kind = "invalid_input"
	KindStructure    Kind = "structure"
	KindIO           Kind = "io"
)

// Classify 将错误归类。只依赖哨兵错误与标准库错误类型，不做字符串匹配。
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrDocumentLoad):
		return KindLoad
	case errors.Is(err, ErrPersist):
		return KindPersist
	case errors.Is(err, ErrInvalidRecord):
		return KindInvalidInput
	case errors.Is(err, ErrResolution), errors.Is(err, ErrTypeMismatch), errors.Is(err, ErrMissingKey),
		errors.Is(err, ErrUnsupportedSubtype):
		return KindStructure
	}
	var perr *os.PathError
	if errors.As(err, &perr) {
		return KindIO
	}
	return KindUnknown
}
