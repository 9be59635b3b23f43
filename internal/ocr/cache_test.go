package ocr_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docscan/internal/logging"
	"docscan/internal/model"
	"docscan/internal/ocr"
	"docscan/internal/ocr/mocks"
	"docscan/internal/redis"
)

func sampleResponse() *model.OCRResponse {
	return &model.OCRResponse{
		FileName: "report.pdf",
		Pages:    1,
		OCRText:  []model.OCRPage{{PageNumber: 1, RawText: "hello"}},
	}
}

func TestCacheKey(t *testing.T) {
	a := ocr.CacheKey([]byte("one"))
	assert.Equal(t, a, ocr.CacheKey([]byte("one")))
	assert.NotEqual(t, a, ocr.CacheKey([]byte("two")))
	assert.Contains(t, a, "ocr:")
}

func TestCachedClient_MissThenStore(t *testing.T) {
	pdf := []byte("%PDF")
	key := ocr.CacheKey(pdf)
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)

	cache.On("Get", mock.Anything, key).Return("", redis.ErrCacheMiss).Once()
	inner.On("Recognize", mock.Anything, "report.pdf", pdf).Return(sampleResponse(), nil).Once()
	cache.On("Set", mock.Anything, key, mock.Anything, time.Hour).Return(nil).Once()

	c := ocr.NewCachedClient(inner, cache, time.Hour, logging.Discard())
	resp, err := c.Recognize(context.Background(), "report.pdf", pdf)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pages)

	inner.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCachedClient_Hit(t *testing.T) {
	pdf := []byte("%PDF")
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)
	cache.On("Get", mock.Anything, ocr.CacheKey(pdf)).
		Return(`{"file_name":"old.pdf","pages":1,"ocr_text":[{"page":1,"text":"cached"}]}`, nil)

	c := ocr.NewCachedClient(inner, cache, time.Hour, logging.Discard())
	resp, err := c.Recognize(context.Background(), "renamed.pdf", pdf)
	require.NoError(t, err)
	assert.Equal(t, "renamed.pdf", resp.FileName)
	require.Len(t, resp.OCRText, 1)
	assert.Equal(t, "cached", resp.OCRText[0].RawText)
	inner.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedClient_CacheFailureBypassed(t *testing.T) {
	pdf := []byte("%PDF")
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return("", errors.New("conn refused"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("conn refused"))
	inner.On("Recognize", mock.Anything, "a.pdf", pdf).Return(sampleResponse(), nil)

	c := ocr.NewCachedClient(inner, cache, time.Minute, logging.Discard())
	resp, err := c.Recognize(context.Background(), "a.pdf", pdf)
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestCachedClient_InnerErrorNotCached(t *testing.T) {
	pdf := []byte("%PDF")
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return("", redis.ErrCacheMiss)
	inner.On("Recognize", mock.Anything, "a.pdf", pdf).Return(nil, &ocr.ServiceError{StatusCode: 503, Err: errors.New("down")})

	c := ocr.NewCachedClient(inner, cache, time.Minute, logging.Discard())
	_, err := c.Recognize(context.Background(), "a.pdf", pdf)
	assert.ErrorIs(t, err, ocr.ErrServiceUnavailable)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedClient_CorruptEntryEvicted(t *testing.T) {
	pdf := []byte("%PDF")
	key := ocr.CacheKey(pdf)
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)

	cache.On("Get", mock.Anything, key).Return("not json", nil).Once()
	cache.On("Del", mock.Anything, []string{key}).Return(nil).Once()
	inner.On("Recognize", mock.Anything, "a.pdf", pdf).Return(sampleResponse(), nil).Once()
	cache.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(nil).Once()

	c := ocr.NewCachedClient(inner, cache, time.Minute, logging.Discard())
	resp, err := c.Recognize(context.Background(), "a.pdf", pdf)
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.OCRText[0].RawText)

	inner.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCachedClient_EvictFailureBypassed(t *testing.T) {
	pdf := []byte("%PDF")
	inner := new(mocks.MockClient)
	cache := new(mocks.MockCache)
	cache.On("Get", mock.Anything, mock.Anything).Return("[]", nil)
	cache.On("Del", mock.Anything, mock.Anything).Return(errors.New("conn refused"))
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	inner.On("Recognize", mock.Anything, "a.pdf", pdf).Return(sampleResponse(), nil)

	c := ocr.NewCachedClient(inner, cache, time.Minute, logging.Discard())
	resp, err := c.Recognize(context.Background(), "a.pdf", pdf)
	require.NoError(t, err)
	assert.NotNil(t, resp)
}
