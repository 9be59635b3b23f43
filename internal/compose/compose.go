// Package compose turns an OCR response into the view shown next to the raw document.
package compose

import (
	"strings"

	"docscan/internal/model"
	"docscan/internal/table"
)

// Source tells which part of the OCR response a Result was built from.
type Source string

const (
	SourceStructured Source = "structured"
	SourcePages      Source = "pages"
)

// PageView is one page of a per-page result. Exactly one of Table or Text is
// set for a page with content; Error is set when the page had a table marker
// but not the expected layout.
type PageView struct {
	Page  int                `json:"page"`
	Table *model.ParsedTable `json:"table,omitempty"`
	Text  string             `json:"text,omitempty"`
	Error string             `json:"error,omitempty"`
}

// Result is the composed OCR output for one document.
type Result struct {
	FileName   string                    `json:"file_name,omitempty"`
	Pages      int                       `json:"pages"`
	Source     Source                    `json:"source"`
	Structured *model.StructuredDocument `json:"structured,omitempty"`
	PageViews  []PageView                `json:"page_views,omitempty"`
}

// Composer picks between structured data and per-page table reconstruction.
type Composer struct {
	tables *table.Reconstructor
}

// New returns a Composer. A nil reconstructor uses the default marker.
func New(tables *table.Reconstructor) *Composer {
	if tables == nil {
		tables = table.New("")
	}
	return &Composer{tables: tables}
}

// Compose builds the view for resp.
//
// Non-empty structured data is used as is, with empty sections removed, and
// the pages are not reconstructed even when a section is missing. Without
// structured data, each page is reconstructed independently; a malformed page
// falls back to its text and does not affect the others.
func (c *Composer) Compose(resp *model.OCRResponse) Result {
	if resp == nil {
		return Result{Source: SourcePages}
	}
	res := Result{FileName: resp.FileName, Pages: resp.Pages}

	if !resp.Structured.IsEmpty() {
		doc := resp.Structured.Normalized()
		res.Source = SourceStructured
		res.Structured = &doc
		return res
	}

	res.Source = SourcePages
	for _, p := range resp.OCRText {
		res.PageViews = append(res.PageViews, c.composePage(p))
	}
	return res
}

func (c *Composer) composePage(p model.OCRPage) PageView {
	lines := table.Lines(p.RawText)
	view := PageView{Page: p.PageNumber}

	tbl, err := c.tables.Reconstruct(lines)
	switch {
	case err != nil:
		view.Text = strings.Join(lines, "\n")
		view.Error = err.Error()
	case tbl != nil:
		view.Table = tbl
	default:
		view.Text = strings.Join(lines, "\n")
	}
	return view
}
