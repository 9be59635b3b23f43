package ocr

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"docscan/internal/model"
)

// InstrumentedClient records the outcome and latency of every Recognize call.
type InstrumentedClient struct {
	inner    Client
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewInstrumentedClient wraps inner and registers its collectors on reg.
func NewInstrumentedClient(inner Client, reg prometheus.Registerer) (*InstrumentedClient, error) {
	c := &InstrumentedClient{
		inner: inner,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ocr_requests_total",
				Help: "OCR submissions by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ocr_request_duration_seconds",
			Help:    "Latency of OCR submissions.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
	if err := reg.Register(c.requests); err != nil {
		return nil, err
	}
	if err := reg.Register(c.duration); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *InstrumentedClient) Recognize(ctx context.Context, fileName string, pdf []byte) (*model.OCRResponse, error) {
	start := time.Now()
	resp, err := c.inner.Recognize(ctx, fileName, pdf)
	c.duration.Observe(time.Since(start).Seconds())
	c.requests.WithLabelValues(outcome(err)).Inc()
	return resp, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrServiceUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
