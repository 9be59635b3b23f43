package ocr

import (
	"errors"
	"sort"

	"github.com/tidwall/gjson"

	"docscan/internal/model"
)

// ErrInvalidResponse is returned by ParseResponse for bodies that are not a JSON object.
var ErrInvalidResponse = errors.New("invalid ocr response")

// ParseResponse reads an OCR service response without trusting its shape.
//
// A missing or non-numeric "pages" becomes 0, a non-array "ocr_text" becomes an
// empty list, entries without a positive page number are dropped and the rest
// are sorted by page. A "structured_data" that is not an object is treated as
// absent. Object key order is kept for the string map sections.
func ParseResponse(body []byte) (*model.OCRResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidResponse
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrInvalidResponse
	}

	resp := &model.OCRResponse{
		FileName: root.Get("file_name").String(),
		OCRText:  make([]model.OCRPage, 0),
	}
	if pages := root.Get("pages"); pages.Type == gjson.Number && pages.Int() > 0 {
		resp.Pages = int(pages.Int())
	}

	if text := root.Get("ocr_text"); text.IsArray() {
		text.ForEach(func(_, item gjson.Result) bool {
			page := item.Get("page")
			if !item.IsObject() || page.Type != gjson.Number || page.Int() < 1 {
				return true
			}
			resp.OCRText = append(resp.OCRText, model.OCRPage{
				PageNumber: int(page.Int()),
				RawText:    item.Get("text").String(),
			})
			return true
		})
		sort.SliceStable(resp.OCRText, func(i, j int) bool {
			return resp.OCRText[i].PageNumber < resp.OCRText[j].PageNumber
		})
	}

	if sd := root.Get("structured_data"); sd.IsObject() {
		resp.Structured = parseStructured(sd)
	}
	return resp, nil
}

func parseStructured(sd gjson.Result) *model.StructuredDocument {
	doc := &model.StructuredDocument{
		Fields:     stringMap(sd.Get("fields")),
		PreparedBy: stringMap(sd.Get("prepared_by")),
		Footer:     stringMap(sd.Get("footer")),
		Notes:      stringList(sd.Get("notes")),
	}
	if tables := sd.Get("tables"); tables.IsArray() {
		for _, t := range tables.Array() {
			if !t.IsObject() {
				continue
			}
			nt := model.NamedTable{
				Name:    t.Get("name").String(),
				Headers: stringList(t.Get("headers")),
			}
			for _, row := range t.Get("rows").Array() {
				switch {
				case row.IsArray():
					nt.Rows = append(nt.Rows, model.RecordFromFields(stringList(row)))
				case row.IsObject():
					values := make([]string, 0, model.RecordFieldCount)
					for _, key := range model.RecordKeys {
						values = append(values, scalar(row.Get(key)))
					}
					nt.Rows = append(nt.Rows, model.RecordFromFields(values))
				}
			}
			doc.Tables = append(doc.Tables, nt)
		}
	}
	return doc
}

// stringMap converts an object into an ordered map; anything else yields nil.
func stringMap(r gjson.Result) *model.StringMap {
	if !r.IsObject() {
		return nil
	}
	m := model.NewStringMap()
	r.ForEach(func(k, v gjson.Result) bool {
		m.Set(k.String(), scalar(v))
		return true
	})
	return m
}

// stringList converts an array into strings; a lone scalar becomes a one-element list.
func stringList(r gjson.Result) []string {
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	if !r.IsArray() {
		if r.IsObject() {
			return nil
		}
		return []string{scalar(r)}
	}
	var out []string
	for _, v := range r.Array() {
		out = append(out, scalar(v))
	}
	return out
}

func scalar(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.String()
	default:
		// numbers and booleans keep the collaborator's spelling
		return v.Raw
	}
}
