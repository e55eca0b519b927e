package annot

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAndReopen 写入记录、保存并重新打开文档
func writeAndReopen(t *testing.T, path string, records []Record) (*Document, WriteReport) {
	t.Helper()
	doc := openFixture(t, path)
	report := WriteDocument(doc, records, nil)
	require.NoError(t, doc.SaveFile(path))
	return openFixture(t, path), report
}

func rectOf(t *testing.T, doc *Document, d types.Dict) []float64 {
	t.Helper()
	obj, err := doc.Resolver().Lookup(d, "Rect")
	require.NoError(t, err)
	rect, err := doc.Resolver().AsNumbers(obj)
	require.NoError(t, err)
	return rect
}

func stringOf(t *testing.T, doc *Document, d types.Dict, key string) string {
	t.Helper()
	obj, err := doc.Resolver().Lookup(d, key)
	require.NoError(t, err)
	b, err := doc.Resolver().AsString(obj)
	require.NoError(t, err)
	return string(b)
}

func TestWriteConcreteScenario(t *testing.T) {
	path := newFixture(1).File(t)
	rec := Record{Page: 0, X: 50, Y: 100, Content: "hello", FontSize: FontSize(12)}

	doc, report := writeAndReopen(t, path, []Record{rec})
	assert.Equal(t, 1, report.Written)
	assert.Empty(t, report.Skipped)

	d := annotDictOf(t, doc, 0, 0)
	assert.InDeltaSlice(t, []float64{50, 724, 250, 742}, rectOf(t, doc, d), 1e-6)
	assert.Equal(t, "0 0 0 rg /Helv 12 Tf", stringOf(t, doc, d, "DA"))
	assert.Equal(t, "hello", stringOf(t, doc, d, "Contents"))

	subtype, err := doc.Resolver().Lookup(d, "Subtype")
	require.NoError(t, err)
	assert.Equal(t, types.Name("FreeText"), subtype)
	typ, err := doc.Resolver().Lookup(d, "Type")
	require.NoError(t, err)
	assert.Equal(t, types.Name("Annot"), typ)

	got := ReadDocument(doc, nil).Records
	if diff := cmp.Diff([]Record{rec}, got, approx); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	path := newFixture(2).File(t)
	records := []Record{{Page: 0, X: 72, Y: 72, Content: "once", FontSize: FontSize(10)}}

	writeAndReopen(t, path, records)
	doc, _ := writeAndReopen(t, path, records)

	assert.Len(t, annotsOf(t, doc, 0), 1)
	assert.Nil(t, annotsOf(t, doc, 1))
	assert.Len(t, ReadDocument(doc, nil).Records, 1)
}

func TestWriteEmptyRemovesAnnots(t *testing.T) {
	path := newFixture(1).File(t)
	writeAndReopen(t, path, []Record{
		{Page: 0, X: 10, Y: 10, Content: "a"},
		{Page: 0, X: 10, Y: 40, Content: "b"},
	})

	doc, report := writeAndReopen(t, path, nil)
	assert.Equal(t, 0, report.Written)

	pageDict, err := doc.Page(0)
	require.NoError(t, err)
	_, found := pageDict.Find("Annots")
	assert.False(t, found, "page 0 still has /Annots")
}

func TestWriteDefaultFontSize(t *testing.T) {
	path := newFixture(1).File(t)

	doc, _ := writeAndReopen(t, path, []Record{{Page: 0, X: 0, Y: 0, Content: "default"}})

	d := annotDictOf(t, doc, 0, 0)
	assert.Equal(t, "0 0 0 rg /Helv 14 Tf", stringOf(t, doc, d, "DA"))
	assert.InDeltaSlice(t, []float64{0, 821, 200, 842}, rectOf(t, doc, d), 1e-6)

	// 写入时的默认字号会被读回
	recs := ReadDocument(doc, nil).Records
	require.Len(t, recs, 1)
	require.NotNil(t, recs[0].FontSize)
	assert.Equal(t, 14.0, *recs[0].FontSize)
}

func TestWriteDefaultPageHeight(t *testing.T) {
	f := newFixture(1).Inherit("/MediaBox [0 0 612 792]").Page(0, "")
	path := f.File(t)

	doc, _ := writeAndReopen(t, path, []Record{{Page: 0, X: 50, Y: 100, Content: "a4", FontSize: FontSize(12)}})

	d := annotDictOf(t, doc, 0, 0)
	assert.InDelta(t, 742.0, rectOf(t, doc, d)[3], 1e-6)

	recs := ReadDocument(doc, nil).Records
	require.Len(t, recs, 1)
	assert.InDelta(t, 100.0, recs[0].Y, 1e-6)
}

func TestWriteWithoutMediaBoxInTree(t *testing.T) {
	path := newFixture(1).Page(0, "").File(t)

	doc, report := writeAndReopen(t, path, []Record{{Page: 0, X: 50, Y: 100, Content: "bare", FontSize: FontSize(12)}})
	assert.Equal(t, 1, report.Written)

	d := annotDictOf(t, doc, 0, 0)
	assert.InDeltaSlice(t, []float64{50, 724, 250, 742}, rectOf(t, doc, d), 1e-6)
}

func TestWriteReplacesAcrossPages(t *testing.T) {
	f := newFixture(2)
	old := f.Object(freeTextObject("(old)", "(/Helv 12 Tf)", "[0 0 200 20]"))
	link := f.Object("<< /Type /Annot /Subtype /Link /Rect [0 0 10 10] >>")
	f.Page(0, fmt.Sprintf("%s /Annots [%d 0 R]", a4MediaBox, old))
	f.Page(1, fmt.Sprintf("/MediaBox [0 0 612 792] /Annots [%d 0 R]", link))
	path := f.File(t)

	records := []Record{
		{Page: 0, X: 1, Y: 2, Content: "first"},
		{Page: 0, X: 3, Y: 4, Content: "second"},
	}
	doc, report := writeAndReopen(t, path, records)
	assert.Equal(t, 2, report.Written)

	got := ReadDocument(doc, nil).Records
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Content)
	assert.Equal(t, "second", got[1].Content)
	assert.Nil(t, annotsOf(t, doc, 1), "page 1 keeps stale annotations")
}

func TestWriteKeepsRecordOrderPerPage(t *testing.T) {
	path := newFixture(2).File(t)
	records := []Record{
		{Page: 1, X: 0, Y: 0, Content: "p1-a"},
		{Page: 0, X: 0, Y: 0, Content: "p0-a"},
		{Page: 1, X: 0, Y: 0, Content: "p1-b"},
	}

	doc, _ := writeAndReopen(t, path, records)

	var contents []string
	for _, rec := range ReadDocument(doc, nil).Records {
		contents = append(contents, fmt.Sprintf("%d:%s", rec.Page, rec.Content))
	}
	assert.Equal(t, []string{"0:p0-a", "1:p1-a", "1:p1-b"}, contents)
}

func TestWriteOutOfRangePage(t *testing.T) {
	path := newFixture(1).File(t)

	doc, report := writeAndReopen(t, path, []Record{
		{Page: 0, X: 0, Y: 0, Content: "ok"},
		{Page: 5, X: 0, Y: 0, Content: "lost"},
	})

	assert.Equal(t, 1, report.Written)
	require.Len(t, report.Skipped, 1)
	assert.Equal(t, 5, report.Skipped[0].Page)
	assert.Len(t, ReadDocument(doc, nil).Records, 1)
}

func TestWriteEscapesContents(t *testing.T) {
	path := newFixture(1).File(t)
	content := "a (b) \\ c\nsecond line 注释"

	doc, _ := writeAndReopen(t, path, []Record{{Page: 0, X: 0, Y: 0, Content: content}})

	recs := ReadDocument(doc, nil).Records
	require.Len(t, recs, 1)
	assert.Equal(t, content, recs[0].Content)
}

func TestGroupByPage(t *testing.T) {
	got := groupByPage([]Record{
		{Page: 2, Content: "a"},
		{Page: 0, Content: "b"},
		{Page: 2, Content: "c"},
	})
	assert.Len(t, got, 2)
	assert.Equal(t, []Record{{Page: 2, Content: "a"}, {Page: 2, Content: "c"}}, got[2])
}
