package mocks

import (
	"context"
	"io"

	"docscan/internal/model"
	"docscan/internal/service"
	"docscan/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalName string, contentType string, size int64) (*model.UploadRecord, error) {
	args := m.Called(ctx, r, originalName, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UploadRecord), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context) ([]model.StoredDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredDocument), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, storedName string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, storedName)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

func (m *MockDocumentService) Compare(ctx context.Context, storedName string) (*service.ComparisonView, error) {
	args := m.Called(ctx, storedName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ComparisonView), args.Error(1)
}

func (m *MockDocumentService) History(ctx context.Context, limit, offset int) (*service.HistoryResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.HistoryResult), args.Error(1)
}
