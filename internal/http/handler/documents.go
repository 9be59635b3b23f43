package handler

import (
	"mime"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"docscan/internal/naming"
	"docscan/internal/service"
)

// UploadFormField is the multipart field carrying the document.
const UploadFormField = "document"

type uploadResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

type documentItem struct {
	StoredName   string    `json:"stored_name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at"`
	PDF          bool      `json:"pdf"`
	Path         string    `json:"path"`
	ComparePath  string    `json:"compare_path,omitempty"`
}

type documentListResponse struct {
	Items []documentItem `json:"data"`
	Total int            `json:"total"`
}

// UploadDocument godoc
// @Summary Upload a document
// @Accept multipart/form-data
// @Produce json
// @Param document formData file true "document to store"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Router /api/upload [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(UploadFormField)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		rec, err := svc.Upload(c.UserContext(), f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{
			Success:      true,
			Message:      "File uploaded successfully",
			Filename:     rec.StoredName,
			OriginalName: rec.OriginalName,
			Size:         rec.Size,
			Path:         service.DocumentURL(rec.StoredName),
		})
	}
}

// ListDocuments godoc
// @Summary List stored documents
// @Produce json
// @Success 200 {object} documentListResponse
// @Failure 500 {object} errorPayload
// @Router /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		items := make([]documentItem, 0, len(docs))
		for _, d := range docs {
			item := documentItem{
				StoredName:   d.StoredName,
				OriginalName: d.OriginalName,
				Size:         d.SizeBytes,
				UploadedAt:   d.UploadedAt,
				PDF:          d.IsPDF(),
				Path:         service.DocumentURL(d.StoredName),
			}
			if item.PDF {
				item.ComparePath = service.CompareURL(d.StoredName)
			}
			items = append(items, item)
		}
		return c.JSON(documentListResponse{Items: items, Total: len(items)})
	}
}

// CompareDocument godoc
// @Summary OCR a stored PDF and return it next to the document link
// @Produce json
// @Param name path string true "stored name"
// @Success 200 {object} service.ComparisonView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /api/documents/{name}/compare [get]
func CompareDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, ok := nameParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid document name")
		}
		view, err := svc.Compare(c.UserContext(), name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	}
}

// ServeDocument godoc
// @Summary Download the raw stored document
// @Param name path string true "stored name"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /uploads/{name} [get]
func ServeDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, ok := nameParam(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid document name")
		}
		rc, info, err := svc.Open(c.UserContext(), name)
		if err != nil {
			return writeServiceError(c, err)
		}

		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEOctetStream
		}
		c.Set(fiber.HeaderContentType, ct)
		if cd := mime.FormatMediaType("inline", map[string]string{"filename": naming.RecoverOriginalName(name)}); cd != "" {
			c.Set(fiber.HeaderContentDisposition, cd)
		}
		size := int(info.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes rc once the body is written.
		return c.SendStream(rc, size)
	}
}

// UploadHistory godoc
// @Summary Page through the upload ledger
// @Produce json
// @Param limit query int false "page size" default(10)
// @Param offset query int false "rows to skip" default(0)
// @Success 200 {object} service.HistoryResult
// @Failure 404 {object} errorPayload
// @Router /api/uploads [get]
func UploadHistory(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.History(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// nameParam returns the unescaped :name route parameter.
func nameParam(c *fiber.Ctx) (string, bool) {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || !naming.ValidStoredName(name) {
		return "", false
	}
	return name, true
}
