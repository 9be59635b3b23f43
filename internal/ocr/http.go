package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docscan/internal/model"
)

const maxResponseBytes = 32 << 20

type recognizeRequest struct {
	FileName  string `json:"file_name"`
	Base64PDF string `json:"base64_pdf"`
}

// HTTPClient posts {file_name, base64_pdf} as JSON to a single endpoint.
type HTTPClient struct {
	url  string
	http *http.Client
}

// NewHTTPClient returns an HTTPClient for url. The timeout bounds the whole
// exchange; zero means no timeout.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url: url,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Recognize sends pdf to the OCR service. Transport failures, non-2xx statuses
// and unparseable bodies are returned as *ServiceError.
func (c *HTTPClient) Recognize(ctx context.Context, fileName string, pdf []byte) (*model.OCRResponse, error) {
	ctx, span := otel.Tracer("docscan/ocr").Start(ctx, "ocr.Recognize", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("ocr.file_name", fileName),
		attribute.Int("ocr.pdf_bytes", len(pdf)),
	)

	resp, err := c.recognize(ctx, fileName, pdf)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ocr request failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("ocr.pages", resp.Pages))
	return resp, nil
}

func (c *HTTPClient) recognize(ctx context.Context, fileName string, pdf []byte) (*model.OCRResponse, error) {
	payload, err := json.Marshal(recognizeRequest{
		FileName:  fileName,
		Base64PDF: base64.StdEncoding.EncodeToString(pdf),
	})
	if err != nil {
		return nil, fmt.Errorf("encode ocr request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, &ServiceError{StatusCode: res.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ServiceError{StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected status %s", http.StatusText(res.StatusCode))}
	}

	parsed, err := ParseResponse(body)
	if err != nil {
		return nil, &ServiceError{StatusCode: res.StatusCode, Err: err}
	}
	if parsed.FileName == "" {
		parsed.FileName = fileName
	}
	return parsed, nil
}
