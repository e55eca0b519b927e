package annot

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Resolver 在文档对象图上解析间接引用并做类型投影。
// 所有投影失败都是可恢复的：调用方跳过当前条目即可。
type Resolver struct {
	ctx *model.Context
}

// NewResolver 基于 pdfcpu 上下文创建解析器
func NewResolver(ctx *model.Context) *Resolver {
	return &Resolver{ctx: ctx}
}

// Resolve 是区分直接值与间接引用的唯一入口。
// 间接引用只跟随一层；目标不存在或为空闲条目时返回 ResolutionError。
func (r *Resolver) Resolve(obj types.Object) (types.Object, error) {
	switch o := obj.(type) {
	case nil:
		return nil, fmt.Errorf("nil object: %w", ErrResolution)
	case types.IndirectRef:
		return r.deref(o)
	case *types.IndirectRef:
		if o == nil {
			return nil, fmt.Errorf("nil reference: %w", ErrResolution)
		}
		return r.deref(*o)
	default:
		return obj, nil
	}
}

func (r *Resolver) deref(ref types.IndirectRef) (types.Object, error) {
	rerr := &ResolutionError{
		ObjectNumber:     ref.ObjectNumber.Value(),
		GenerationNumber: ref.GenerationNumber.Value(),
	}
	if r.ctx == nil {
		return nil, rerr
	}
	// pdfcpu 对未定义对象返回 (nil, nil)，按 PDF 规范视作 null
	obj, err := r.ctx.Dereference(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerr, err)
	}
	if obj == nil {
		return nil, rerr
	}
	return obj, nil
}

// Lookup 查找并解析字典条目
func (r *Resolver) Lookup(d types.Dict, key string) (types.Object, error) {
	obj, found := d.Find(key)
	if !found {
		return nil, fmt.Errorf("/%s: %w", key, ErrMissingKey)
	}
	resolved, err := r.Resolve(obj)
	if err != nil {
		return nil, fmt.Errorf("/%s: %w", key, err)
	}
	return resolved, nil
}

// AsDict 投影为字典
func (r *Resolver) AsDict(obj types.Object) (types.Dict, error) {
	o, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	switch d := o.(type) {
	case types.Dict:
		return d, nil
	case types.StreamDict:
		return d.Dict, nil
	}
	return nil, mismatch("dict", o)
}

// AsArray 投影为数组
func (r *Resolver) AsArray(obj types.Object) (types.Array, error) {
	o, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	if a, ok := o.(types.Array); ok {
		return a, nil
	}
	return nil, mismatch("array", o)
}

// AsName 投影为名称（不含前导斜杠）
func (r *Resolver) AsName(obj types.Object) (string, error) {
	o, err := r.Resolve(obj)
	if err != nil {
		return "", err
	}
	if n, ok := o.(types.Name); ok {
		return n.Value(), nil
	}
	return "", mismatch("name", o)
}

// AsString 投影为字符串的原始字节，字面串会先去掉转义
func (r *Resolver) AsString(obj types.Object) ([]byte, error) {
	o, err := r.Resolve(obj)
	if err != nil {
		return nil, err
	}
	switch s := o.(type) {
	case types.StringLiteral:
		b, err := types.Unescape(s.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: literal string: %v", ErrTypeMismatch, err)
		}
		return b, nil
	case types.HexLiteral:
		b, err := s.Bytes()
		if err != nil {
			return nil, fmt.Errorf("%w: hex string: %v", ErrTypeMismatch, err)
		}
		return b, nil
	}
	return nil, mismatch("string", o)
}

// AsNumber 投影为 float64，整数与实数一视同仁
func (r *Resolver) AsNumber(obj types.Object) (float64, error) {
	o, err := r.Resolve(obj)
	if err != nil {
		return 0, err
	}
	switch n := o.(type) {
	case types.Integer:
		return float64(n.Value()), nil
	case types.Float:
		return n.Value(), nil
	}
	return 0, mismatch("number", o)
}

// AsNumbers 将数组逐项投影为数值，任一项失败即整体失败
func (r *Resolver) AsNumbers(obj types.Object) ([]float64, error) {
	arr, err := r.AsArray(obj)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(arr))
	for i, item := range arr {
		v, err := r.AsNumber(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

func mismatch(want string, got types.Object) error {
	return &TypeMismatchError{Want: want, Got: fmt.Sprintf("%T", got)}
}
