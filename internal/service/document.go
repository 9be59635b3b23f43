package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"docscan/internal/compose"
	"docscan/internal/index"
	"docscan/internal/logging"
	"docscan/internal/model"
	"docscan/internal/naming"
	"docscan/internal/ocr"
	"docscan/internal/pdf"
	"docscan/internal/repository"
	"docscan/internal/storage"
)

var (
	ErrFileRequired   = errors.New("file is required")
	ErrInvalidType    = errors.New("file type not allowed")
	ErrTooLarge       = errors.New("file too large")
	ErrInvalidName    = errors.New("invalid document name")
	ErrNotFound       = errors.New("document not found")
	ErrLedgerDisabled = errors.New("upload ledger disabled")
)

// OCR status values of a ComparisonView.
const (
	OCRStatusOK          = "ok"
	OCRStatusUnavailable = "unavailable"
)

// DocumentPathPrefix is where raw stored documents are served.
const DocumentPathPrefix = "/uploads/"

// ComparisonView pairs a stored PDF with its OCR result.
type ComparisonView struct {
	StoredName   string `json:"stored_name"`
	OriginalName string `json:"original_name"`
	DocumentURL  string `json:"document_url"`
	SourcePages  int    `json:"source_pages"`
	OCRStatus    string `json:"ocr_status"`
	OCRError     string `json:"ocr_error,omitempty"`
	compose.Result
}

// HistoryResult is a page of the upload ledger.
type HistoryResult struct {
	Items []model.UploadRecord `json:"data"`
	Total int                  `json:"total"`
}

// Options holds the upload policy.
type Options struct {
	MaxUploadBytes    int64
	AllowedExtensions []string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload validates and stores the content under a timestamped name, then
	// records it in the ledger. The object is removed if the ledger write fails.
	Upload(ctx context.Context, r io.Reader, originalName string, contentType string, size int64) (*model.UploadRecord, error)

	// List returns every stored document, oldest upload first.
	List(ctx context.Context) ([]model.StoredDocument, error)

	// Open streams a stored document. The caller closes the reader.
	Open(ctx context.Context, storedName string) (io.ReadCloser, storage.ObjectInfo, error)

	// Compare runs OCR on a stored PDF and composes the result. An OCR
	// failure is reported inside the view, not as an error.
	Compare(ctx context.Context, storedName string) (*ComparisonView, error)

	// History returns a page of the upload ledger.
	History(ctx context.Context, limit, offset int) (*HistoryResult, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	docs     *index.DocumentIndex
	ledger   repository.UploadRepository
	ocr      ocr.Client
	composer *compose.Composer
	logger   *logging.Logger
	opts     Options
	allowed  map[string]struct{}
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService. A nil ledger disables
// History and ledger writes; a nil OCR client behaves like ocr.Disabled.
func NewDocumentService(store storage.Storage, ledger repository.UploadRepository, ocrClient ocr.Client, composer *compose.Composer, logger *logging.Logger, opts Options) DocumentService {
	if ocrClient == nil {
		ocrClient = ocr.Disabled()
	}
	if composer == nil {
		composer = compose.New(nil)
	}
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &documentService{
		store:    store,
		docs:     index.New(store),
		ledger:   ledger,
		ocr:      ocrClient,
		composer: composer,
		logger:   logger,
		opts:     opts,
		allowed:  allowed,
		now:      time.Now,
	}
}

// DocumentURL returns the path a stored document is served from.
func DocumentURL(storedName string) string {
	return DocumentPathPrefix + url.PathEscape(storedName)
}

// CompareURL returns the path of a stored document's comparison view.
func CompareURL(storedName string) string {
	return "/api/documents/" + url.PathEscape(storedName) + "/compare"
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalName string, contentType string, size int64) (*model.UploadRecord, error) {
	if r == nil {
		return nil, ErrFileRequired
	}
	base := baseName(originalName)
	if base == "" {
		return nil, ErrFileRequired
	}
	if !s.extensionAllowed(base) {
		return nil, ErrInvalidType
	}
	if s.opts.MaxUploadBytes > 0 && size > s.opts.MaxUploadBytes {
		return nil, ErrTooLarge
	}

	now := s.now()
	storedName := naming.AssignStoredName(base, now.UnixMilli())
	if !naming.ValidStoredName(storedName) {
		return nil, ErrInvalidName
	}
	if contentType == "" || contentType == "application/octet-stream" {
		if ct := mime.TypeByExtension(path.Ext(base)); ct != "" {
			contentType = ct
		} else {
			contentType = "application/octet-stream"
		}
	}

	objInfo, err := s.store.Put(ctx, storedName, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": base,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.UploadRecord{
		ID:           uuid.New().String(),
		StoredName:   storedName,
		OriginalName: base,
		Size:         objInfo.Size,
		ContentType:  contentType,
		UploadedAt:   now.UTC(),
	}
	if rec.Size <= 0 && size > 0 {
		rec.Size = size
	}
	if s.ledger == nil {
		return rec, nil
	}

	stored, err := s.ledger.Record(ctx, rec)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			return nil, fmt.Errorf("ledger save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("ledger save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context) ([]model.StoredDocument, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, err
	}
	index.SortByUploadedAt(docs)
	return docs, nil
}

func (s *documentService) Open(ctx context.Context, storedName string) (io.ReadCloser, storage.ObjectInfo, error) {
	if !naming.ValidStoredName(storedName) {
		return nil, storage.ObjectInfo{}, ErrInvalidName
	}
	rc, info, err := s.store.Get(ctx, storedName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("open from storage: %w", err)
	}
	return rc, info, nil
}

func (s *documentService) Compare(ctx context.Context, storedName string) (*ComparisonView, error) {
	if !naming.ValidStoredName(storedName) {
		return nil, ErrInvalidName
	}
	doc := model.StoredDocument{StoredName: storedName}
	if !doc.IsPDF() {
		return nil, ErrInvalidType
	}

	rc, _, err := s.Open(ctx, storedName)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read from storage: %w", err)
	}

	originalName := naming.RecoverOriginalName(storedName)
	view := &ComparisonView{
		StoredName:   storedName,
		OriginalName: originalName,
		DocumentURL:  DocumentURL(storedName),
		SourcePages:  pdf.PageCount(content),
		OCRStatus:    OCRStatusOK,
	}

	resp, err := s.ocr.Recognize(ctx, originalName, content)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.logger.Error("ocr_failed", err, map[string]any{
			"component":   "service",
			"stored_name": storedName,
		})
		view.OCRStatus = OCRStatusUnavailable
		view.OCRError = "OCR unavailable"
		view.Result = compose.Result{Source: compose.SourcePages}
		return view, nil
	}

	view.Result = s.composer.Compose(resp)
	return view, nil
}

func (s *documentService) History(ctx context.Context, limit, offset int) (*HistoryResult, error) {
	if s.ledger == nil {
		return nil, ErrLedgerDisabled
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.ledger.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) extensionAllowed(name string) bool {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext == "" {
		return false
	}
	_, ok := s.allowed[ext]
	return ok
}

// baseName strips any client-supplied directory, using either separator.
func baseName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}
