package annot

import (
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/require"

	"github.com/novvoo/pdfnote/internal/pdftest"
)

const a4MediaBox = pdftest.A4MediaBox

var (
	newFixture     = pdftest.New
	freeTextObject = pdftest.FreeText
)

// annotsOf 返回第 page 页 Annots 解析后的数组，不存在时返回 nil
func annotsOf(t *testing.T, doc *Document, page int) types.Array {
	t.Helper()
	pageDict, err := doc.Page(page)
	require.NoError(t, err)
	obj, found := pageDict.Find("Annots")
	if !found {
		return nil
	}
	arr, err := doc.Resolver().AsArray(obj)
	require.NoError(t, err)
	return arr
}

// annotDictOf 返回第 page 页第 i 个注释字典
func annotDictOf(t *testing.T, doc *Document, page, i int) types.Dict {
	t.Helper()
	arr := annotsOf(t, doc, page)
	require.Greater(t, len(arr), i)
	d, err := doc.Resolver().AsDict(arr[i])
	require.NoError(t, err)
	return d
}

func openFixture(t *testing.T, path string) *Document {
	t.Helper()
	doc, err := OpenFile(path)
	require.NoError(t, err)
	return doc
}
