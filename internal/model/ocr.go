package model

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// StringMap is an insertion-ordered string map; it marshals to a JSON object
// with keys in insertion order.
type StringMap = orderedmap.OrderedMap[string, string]

// NewStringMap returns an empty StringMap.
func NewStringMap() *StringMap {
	return orderedmap.New[string, string]()
}

// MapLen is a nil-safe length for StringMap.
func MapLen(m *StringMap) int {
	if m == nil {
		return 0
	}
	return m.Len()
}

// OCRPage is the plain text the OCR collaborator produced for one physical page.
type OCRPage struct {
	PageNumber int    `json:"page"`
	RawText    string `json:"text"`
}

// OCRResponse is the normalized OCR collaborator response.
type OCRResponse struct {
	FileName   string              `json:"file_name"`
	Pages      int                 `json:"pages"`
	OCRText    []OCRPage           `json:"ocr_text"`
	Structured *StructuredDocument `json:"structured_data,omitempty"`
}

// NamedTable is a table supplied by the OCR collaborator's structured output.
type NamedTable struct {
	Name    string   `json:"name,omitempty"`
	Headers []string `json:"headers,omitempty"`
	Rows    []Record `json:"rows,omitempty"`
}

// IsEmpty reports whether the table has neither headers nor rows.
func (t NamedTable) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// StructuredDocument is structured OCR output. Every section is optional and an
// empty section is equivalent to an absent one.
type StructuredDocument struct {
	Fields     *StringMap   `json:"fields,omitempty"`
	Tables     []NamedTable `json:"tables,omitempty"`
	PreparedBy *StringMap   `json:"prepared_by,omitempty"`
	Footer     *StringMap   `json:"footer,omitempty"`
	Notes      []string     `json:"notes,omitempty"`
}

// IsEmpty reports whether no section carries content. A nil document is empty.
func (d *StructuredDocument) IsEmpty() bool {
	if d == nil {
		return true
	}
	n := d.Normalized()
	return n.Fields == nil && n.Tables == nil && n.PreparedBy == nil && n.Footer == nil && n.Notes == nil
}

// Normalized returns a copy where every empty section is nil, so that it is
// omitted when marshaled. Empty tables and blank notes are dropped.
func (d *StructuredDocument) Normalized() StructuredDocument {
	var out StructuredDocument
	if d == nil {
		return out
	}
	if MapLen(d.Fields) > 0 {
		out.Fields = d.Fields
	}
	if MapLen(d.PreparedBy) > 0 {
		out.PreparedBy = d.PreparedBy
	}
	if MapLen(d.Footer) > 0 {
		out.Footer = d.Footer
	}
	for _, t := range d.Tables {
		if !t.IsEmpty() {
			out.Tables = append(out.Tables, t)
		}
	}
	for _, n := range d.Notes {
		if n != "" {
			out.Notes = append(out.Notes, n)
		}
	}
	return out
}
