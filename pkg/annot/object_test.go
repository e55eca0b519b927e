package annot

import (
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverDirectValues(t *testing.T) {
	r := NewResolver(nil)

	n, err := r.AsNumber(types.Integer(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, n)

	n, err = r.AsNumber(types.Float(2.5))
	require.NoError(t, err)
	assert.Equal(t, 2.5, n)

	_, err = r.AsNumber(types.Name("Foo"))
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	var tm *TypeMismatchError
	require.True(t, errors.As(err, &tm))
	assert.Equal(t, "number", tm.Want)

	name, err := r.AsName(types.Name("FreeText"))
	require.NoError(t, err)
	assert.Equal(t, "FreeText", name)

	s, err := r.AsString(types.StringLiteral(`a\(b\) \\ c`))
	require.NoError(t, err)
	assert.Equal(t, `a(b) \ c`, string(s))

	s, err = r.AsString(types.HexLiteral("48656C6C6F"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(s))

	_, err = r.AsString(types.Integer(1))
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = r.AsDict(types.Array{})
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = r.AsArray(types.Dict{})
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	nums, err := r.AsNumbers(types.Array{types.Integer(0), types.Float(0.5), types.Integer(595), types.Float(842)})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 595, 842}, nums)

	_, err = r.AsNumbers(types.Array{types.Integer(0), types.Name("x")})
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	_, err = r.Resolve(nil)
	assert.True(t, errors.Is(err, ErrResolution))
}

func TestResolverIndirect(t *testing.T) {
	f := newFixture(1)
	dictNr := f.Object("<< /Num 7 /Real 2.5 /Arr [1 2.5 3] /Str (hi) >>")
	arrNr := f.Object("[10 20]")
	doc := openFixture(t, f.File(t))
	r := doc.Resolver()

	d, err := r.AsDict(*types.NewIndirectRef(dictNr, 0))
	require.NoError(t, err)

	num, err := r.Lookup(d, "Num")
	require.NoError(t, err)
	v, err := r.AsNumber(num)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	arr, err := r.AsNumbers(types.NewIndirectRef(arrNr, 0))
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, arr)

	_, err = r.Lookup(d, "Missing")
	assert.True(t, errors.Is(err, ErrMissingKey))

	// 间接引用只跟随一层，目标不存在即失败
	_, err = r.Resolve(*types.NewIndirectRef(999, 0))
	require.True(t, errors.Is(err, ErrResolution))
	var re *ResolutionError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 999, re.ObjectNumber)

	_, err = r.AsDict(*types.NewIndirectRef(999, 0))
	assert.True(t, errors.Is(err, ErrResolution))
}
