package model

import (
	"path/filepath"
	"strings"
	"time"
)

// StoredDocument is one document in the storage namespace.
// StoredName is the only key; OriginalName is recovered from it and may collide across uploads.
type StoredDocument struct {
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	SizeBytes    int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// IsPDF reports whether the stored document carries a .pdf extension.
// Only PDFs are offered for OCR comparison.
func (d StoredDocument) IsPDF() bool {
	return strings.EqualFold(filepath.Ext(d.StoredName), ".pdf")
}

// UploadRecord is a ledger row written when an upload is accepted.
// Unlike StoredDocument.OriginalName, OriginalName here is the name the client sent.
type UploadRecord struct {
	ID           string    `json:"id"`
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
