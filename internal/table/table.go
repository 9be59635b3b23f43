// Package table rebuilds a fixed-layout table from flat OCR lines.
//
// The layout is assumed, not detected: a marker line, then ColumnCount header
// lines, then records of ColumnCount consecutive lines each. It is a last
// resort for pages where the OCR collaborator returned no structured data.
package table

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"docscan/internal/model"
)

const (
	// DefaultMarker is the line that opens a table region.
	DefaultMarker = "Item"
	// ColumnCount is both the number of header lines and the number of lines per record.
	ColumnCount = model.RecordFieldCount
)

// ErrMalformedTable matches every *MalformedTableError.
var ErrMalformedTable = errors.New("malformed table")

// MalformedTableError reports a marker line without enough header lines after it.
type MalformedTableError struct {
	MarkerIndex int
	Available   int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed table: marker at line %d followed by %d of %d header lines",
		e.MarkerIndex, e.Available, ColumnCount)
}

// Is makes errors.Is(err, ErrMalformedTable) true.
func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}

var ordinalPrefix = regexp.MustCompile(`^\d+\s+`)

// Reconstructor finds and regroups a table in one page of OCR lines.
type Reconstructor struct {
	marker string
}

// New returns a Reconstructor keyed on marker. An empty marker means DefaultMarker.
func New(marker string) *Reconstructor {
	if marker == "" {
		marker = DefaultMarker
	}
	return &Reconstructor{marker: marker}
}

// Marker returns the line that opens a table region.
func (r *Reconstructor) Marker() string {
	return r.marker
}

// Reconstruct parses lines, which must already be trimmed and non-empty.
//
// It returns (nil, nil) when no line equals the marker. It returns a
// *MalformedTableError when fewer than ColumnCount lines follow the marker.
// Lines after the headers are grouped ColumnCount at a time; a trailing
// incomplete group is dropped.
func (r *Reconstructor) Reconstruct(lines []string) (*model.ParsedTable, error) {
	h := -1
	for i, line := range lines {
		if line == r.marker {
			h = i
			break
		}
	}
	if h < 0 {
		return nil, nil
	}

	start := h + 1
	if avail := len(lines) - start; avail < ColumnCount {
		return nil, &MalformedTableError{MarkerIndex: h, Available: avail}
	}

	headers := append([]string(nil), lines[start:start+ColumnCount]...)
	rows := make([]model.Record, 0)
	for i := start + ColumnCount; i+ColumnCount <= len(lines); i += ColumnCount {
		rec := model.RecordFromFields(lines[i : i+ColumnCount])
		rec.Name = StripOrdinal(rec.Name)
		rows = append(rows, rec)
	}

	return &model.ParsedTable{Headers: headers, Rows: rows}, nil
}

// StripOrdinal removes a leading "digits + whitespace" prefix such as "12 ".
func StripOrdinal(s string) string {
	return ordinalPrefix.ReplaceAllString(s, "")
}

// Lines splits raw page text into trimmed, non-empty lines.
func Lines(raw string) []string {
	out := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
