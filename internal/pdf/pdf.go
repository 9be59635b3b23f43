// Package pdf inspects uploaded PDF documents.
package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount returns the number of pages in b, or 0 when b cannot be read as a PDF.
func PageCount(b []byte) (n int) {
	if len(b) == 0 {
		return 0
	}
	// pdfcpu can panic on hostile input.
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	count, err := api.PageCount(bytes.NewReader(b), conf)
	if err != nil {
		return 0
	}
	return count
}
