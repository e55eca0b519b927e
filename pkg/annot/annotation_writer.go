package annot

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// WriteReport 写入结果：新建的注释数量以及被跳过的条目
type WriteReport struct {
	Written int    `json:"written"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// WriteDocument 用 records 重建每一页的 Annots。
// 每一页都会被处理（而不只是有新记录的页面），旧的注释列表被整体替换，
// 多次保存不会累积重复注释。旧注释对象只是失去引用，不会从对象表中删除。
func WriteDocument(doc *Document, records []Record, logger *slog.Logger) WriteReport {
	skips := newSkipLog(logger, "write")
	byPage := groupByPage(records)
	r := doc.Resolver()
	written := 0

	for page := 0; page < doc.PageCount(); page++ {
		pageDict, err := doc.Page(page)
		if err != nil {
			skips.add(page, -1, err)
			continue
		}

		pageRecords := byPage[page]
		delete(byPage, page)

		if len(pageRecords) == 0 {
			clearPage(r, page, pageDict, skips)
			continue
		}

		conv := NewCoordinateConverter(pageHeight(r, pageDict))
		refs := make(types.Array, 0, len(pageRecords))
		for i, rec := range pageRecords {
			ref, err := doc.addObject(freeTextDict(conv, rec))
			if err != nil {
				skips.add(page, i, fmt.Errorf("add annotation object: %w", err))
				continue
			}
			refs = append(refs, ref)
		}

		// 覆盖而不是追加
		if len(refs) == 0 {
			delete(pageDict, "Annots")
			continue
		}
		pageDict["Annots"] = refs
		written += len(refs)
	}

	// 指向不存在页面的记录
	for _, page := range slices.Sorted(maps.Keys(byPage)) {
		for i := range byPage[page] {
			skips.add(page, i, fmt.Errorf("page %d out of range (total pages: %d)", page, doc.PageCount()))
		}
	}

	return WriteReport{Written: written, Skipped: skips.items}
}

// clearPage 删除没有新记录的页面上的 Annots。
// Annots 无法解析为数组时保持原样。
func clearPage(r *Resolver, page int, pageDict types.Dict, skips *skipLog) {
	obj, found := pageDict.Find("Annots")
	if !found {
		return
	}
	if _, err := r.AsArray(obj); err != nil {
		skips.add(page, -1, fmt.Errorf("/Annots left unchanged: %w", err))
		return
	}
	delete(pageDict, "Annots")
}

// groupByPage 按页面分组，组内保持原顺序
func groupByPage(records []Record) map[int][]Record {
	byPage := make(map[int][]Record)
	for _, rec := range records {
		byPage[rec.Page] = append(byPage[rec.Page], rec)
	}
	return byPage
}

// freeTextDict 构造自由文本注释字典
func freeTextDict(conv CoordinateConverter, rec Record) types.Dict {
	size := rec.FontSizeOrDefault()
	x, top := conv.CallerToPDF(rec.X, rec.Y)
	rect := NoteRect(x, top, size)

	return types.Dict{
		"Type":     types.Name("Annot"),
		"Subtype":  types.Name(SubtypeFreeText),
		"Contents": literal(rec.Content),
		"DA":       literal(FormatDA(size)),
		"Rect": types.Array{
			types.Float(rect[0]),
			types.Float(rect[1]),
			types.Float(rect[2]),
			types.Float(rect[3]),
		},
	}
}

// literal 将文本原样（UTF-8 字节）写成字面串，并转义括号与反斜杠
func literal(s string) types.StringLiteral {
	escaped, err := types.Escape(s)
	if err != nil || escaped == nil {
		return types.StringLiteral(s)
	}
	return types.StringLiteral(*escaped)
}
