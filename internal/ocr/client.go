// Package ocr talks to the external OCR service and normalizes its responses.
package ocr

import (
	"context"
	"errors"
	"fmt"

	"docscan/internal/model"
)

// ErrServiceUnavailable matches every *ServiceError.
var ErrServiceUnavailable = errors.New("ocr service unavailable")

// ServiceError reports an unreachable OCR service, a non-success status, or a
// body that could not be read as a response. StatusCode is 0 when no HTTP
// response was received.
type ServiceError struct {
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ocr service: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("ocr service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrServiceUnavailable) true.
func (e *ServiceError) Is(target error) bool { return target == ErrServiceUnavailable }

// Client submits one PDF to the OCR service and returns its normalized response.
type Client interface {
	Recognize(ctx context.Context, fileName string, pdf []byte) (*model.OCRResponse, error)
}

type disabledClient struct{}

// Disabled returns a Client that always fails with ErrServiceUnavailable.
// It is used when no OCR endpoint is configured.
func Disabled() Client {
	return disabledClient{}
}

func (disabledClient) Recognize(context.Context, string, []byte) (*model.OCRResponse, error) {
	return nil, &ServiceError{Err: errors.New("no endpoint configured")}
}
