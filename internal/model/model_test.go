package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredDocument_IsPDF(t *testing.T) {
	assert.True(t, StoredDocument{StoredName: "report_1.pdf"}.IsPDF())
	assert.True(t, StoredDocument{StoredName: "SCAN_1.PDF"}.IsPDF())
	assert.False(t, StoredDocument{StoredName: "notes_1.txt"}.IsPDF())
	assert.False(t, StoredDocument{StoredName: "pdf"}.IsPDF())
}

func TestRecordFromFields(t *testing.T) {
	r := RecordFromFields([]string{"Jane", "E-1", "1,000.00", "50", "40", "90", "extra"})
	assert.Equal(t, "Jane", r.Name)
	assert.Equal(t, "90", r.TotalContribution)
	assert.Equal(t, []string{"Jane", "E-1", "1,000.00", "50", "40", "90"}, r.Fields())

	short := RecordFromFields([]string{"Only"})
	assert.Equal(t, "Only", short.Name)
	assert.Empty(t, short.TotalContribution)
}

func TestStructuredDocument_Normalized(t *testing.T) {
	doc := &StructuredDocument{
		Fields: NewStringMap(),
		Tables: []NamedTable{{Name: "contributions", Headers: []string{"a"}}, {}},
		Notes:  []string{"", "checked"},
	}

	n := doc.Normalized()
	assert.Nil(t, n.Fields)
	assert.Nil(t, n.PreparedBy)
	require.Len(t, n.Tables, 1)
	assert.Equal(t, "contributions", n.Tables[0].Name)
	assert.Equal(t, []string{"checked"}, n.Notes)
	assert.False(t, doc.IsEmpty())
}

func TestStructuredDocument_IsEmpty(t *testing.T) {
	var nilDoc *StructuredDocument
	assert.True(t, nilDoc.IsEmpty())
	assert.True(t, (&StructuredDocument{}).IsEmpty())
	assert.True(t, (&StructuredDocument{Fields: NewStringMap(), Tables: []NamedTable{{}}}).IsEmpty())

	footer := NewStringMap()
	footer.Set("page", "1 of 1")
	assert.False(t, (&StructuredDocument{Footer: footer}).IsEmpty())
}

func TestStructuredDocument_MarshalKeepsFieldOrderAndOmitsEmpty(t *testing.T) {
	fields := NewStringMap()
	fields.Set("period", "2024-01")
	fields.Set("company", "Acme")
	fields.Set("branch", "North")

	n := (&StructuredDocument{Fields: fields, PreparedBy: NewStringMap()}).Normalized()
	b, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fields":{"period":"2024-01","company":"Acme","branch":"North"}}`, string(b))
	assert.Less(t, strings.Index(string(b), "period"), strings.Index(string(b), "company"))
	assert.Less(t, strings.Index(string(b), "company"), strings.Index(string(b), "branch"))
}

func TestUploadRecordJSON(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	b, err := json.Marshal(UploadRecord{ID: "id", StoredName: "a_1.pdf", OriginalName: "a.pdf", Size: 3, ContentType: "application/pdf", UploadedAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id","stored_name":"a_1.pdf","original_name":"a.pdf","size":3,"content_type":"application/pdf","uploaded_at":"2024-01-02T03:04:05Z"}`, string(b))
}
