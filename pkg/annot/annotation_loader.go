package annot

import (
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ReadReport 读取结果：提取出的记录以及被跳过的条目
type ReadReport struct {
	Records []Record `json:"records"`
	Skipped []Skip   `json:"skipped,omitempty"`
}

// ReadDocument 遍历全部页面并提取自由文本注释。
// 整体永不失败：单个页面或注释的问题只会让该条目被跳过。
func ReadDocument(doc *Document, logger *slog.Logger) ReadReport {
	skips := newSkipLog(logger, "read")
	records := make([]Record, 0)
	r := doc.Resolver()

	for page := 0; page < doc.PageCount(); page++ {
		pageDict, err := doc.Page(page)
		if err != nil {
			skips.add(page, -1, err)
			continue
		}
		records = append(records, readPage(r, page, pageDict, skips)...)
	}

	return ReadReport{Records: records, Skipped: skips.items}
}

// readPage 提取单个页面上的注释
func readPage(r *Resolver, page int, pageDict types.Dict, skips *skipLog) []Record {
	// 没有 Annots 的页面直接跳过，不算异常
	if _, found := pageDict.Find("Annots"); !found {
		return nil
	}

	annots, err := r.AsArray(pageDict["Annots"])
	if err != nil {
		skips.add(page, -1, fmt.Errorf("/Annots: %w", err))
		return nil
	}

	conv := NewCoordinateConverter(pageHeight(r, pageDict))

	var records []Record
	for i, entry := range annots {
		rec, err := parseFreeText(r, conv, entry)
		if err != nil {
			skips.add(page, i, err)
			continue
		}
		rec.Page = page
		records = append(records, rec)
	}
	return records
}

// parseFreeText 将一个注释条目解析为 Record，非自由文本注释返回错误
func parseFreeText(r *Resolver, conv CoordinateConverter, entry types.Object) (Record, error) {
	annotDict, err := r.AsDict(entry)
	if err != nil {
		return Record{}, err
	}

	// Subtype、Contents、Rect 三者缺一不可
	subtypeObj, err := r.Lookup(annotDict, "Subtype")
	if err != nil {
		return Record{}, err
	}
	contentsObj, err := r.Lookup(annotDict, "Contents")
	if err != nil {
		return Record{}, err
	}
	rectObj, err := r.Lookup(annotDict, "Rect")
	if err != nil {
		return Record{}, err
	}

	subtype, err := r.AsName(subtypeObj)
	if err != nil {
		return Record{}, fmt.Errorf("/Subtype: %w", err)
	}
	if subtype != SubtypeFreeText {
		return Record{}, fmt.Errorf("subtype %s: %w", subtype, ErrUnsupportedSubtype)
	}

	contents, err := r.AsString(contentsObj)
	if err != nil {
		return Record{}, fmt.Errorf("/Contents: %w", err)
	}

	rect, err := r.AsNumbers(rectObj)
	if err != nil {
		return Record{}, fmt.Errorf("/Rect: %w", err)
	}
	if len(rect) < 4 {
		return Record{}, fmt.Errorf("/Rect has %d entries: %w", len(rect), ErrTypeMismatch)
	}

	// Rect: [左 下 右 上]，调用方 Y 对应文本上边缘
	x, y := conv.PDFToCaller(rect[0], rect[3])

	return Record{
		X:        x,
		Y:        y,
		Content:  DecodeText(contents),
		FontSize: readFontSize(r, annotDict),
	}, nil
}

// readFontSize 从 DA 中读取字号，缺失或无法解析时返回 nil
func readFontSize(r *Resolver, annotDict types.Dict) *float64 {
	daObj, err := r.Lookup(annotDict, "DA")
	if err != nil {
		return nil
	}
	da, err := r.AsString(daObj)
	if err != nil {
		return nil
	}
	return ParseFontSize(DecodeText(da))
}
