package ocr

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"docscan/internal/logging"
	"docscan/internal/model"
	"docscan/internal/redis"
)

const cacheKeyPrefix = "ocr:"

// Cache stores serialized OCR responses. *redis.Client satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// CachedClient serves repeated submissions of identical bytes from Cache.
// Entries are keyed by the SHA-256 of the PDF, so an overwritten stored name
// never returns the previous document's text. Unreadable entries are evicted.
// Cache failures are logged and bypassed.
type CachedClient struct {
	inner  Client
	cache  Cache
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedClient wraps inner with cache.
func NewCachedClient(inner Client, cache Cache, ttl time.Duration, logger *logging.Logger) *CachedClient {
	return &CachedClient{inner: inner, cache: cache, ttl: ttl, logger: logger}
}

// CacheKey returns the cache key for pdf.
func CacheKey(pdf []byte) string {
	sum := sha256.Sum256(pdf)
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func (c *CachedClient) Recognize(ctx context.Context, fileName string, pdf []byte) (*model.OCRResponse, error) {
	key := CacheKey(pdf)

	raw, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		if resp, perr := ParseResponse([]byte(raw)); perr == nil {
			resp.FileName = fileName
			return resp, nil
		}
		c.logger.Error("ocr_cache_corrupt", nil, map[string]any{"component": "ocr", "key": key})
		if derr := c.cache.Del(ctx, key); derr != nil {
			c.logger.Error("ocr_cache_evict_failed", derr, map[string]any{"component": "ocr", "key": key})
		}
	case !errors.Is(err, redis.ErrCacheMiss):
		c.logger.Error("ocr_cache_get_failed", err, map[string]any{"component": "ocr", "key": key})
	}

	resp, err := c.inner.Recognize(ctx, fileName, pdf)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(resp)
	if err == nil {
		err = c.cache.Set(ctx, key, b, c.ttl)
	}
	if err != nil {
		c.logger.Error("ocr_cache_set_failed", err, map[string]any{"component": "ocr", "key": key})
	}
	return resp, nil
}
