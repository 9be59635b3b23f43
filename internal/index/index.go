// Package index lists stored documents straight from storage.
package index

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"docscan/internal/model"
	"docscan/internal/naming"
	"docscan/internal/storage"
)

// ErrStorageUnreadable wraps every enumeration failure.
var ErrStorageUnreadable = errors.New("storage unreadable")

// Enumerator is the part of storage.Storage the index needs.
type Enumerator interface {
	List(ctx context.Context) ([]storage.ObjectInfo, error)
}

// DocumentIndex is a read-through view over an Enumerator.
type DocumentIndex struct {
	store Enumerator
}

// New returns a DocumentIndex over store.
func New(store Enumerator) *DocumentIndex {
	return &DocumentIndex{store: store}
}

// List returns every stored document in the order storage enumerates them.
// Callers that need upload order should use SortByUploadedAt. An empty store
// yields an empty slice; a storage failure yields no documents at all.
func (x *DocumentIndex) List(ctx context.Context) ([]model.StoredDocument, error) {
	objects, err := x.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnreadable, err)
	}
	docs := make([]model.StoredDocument, 0, len(objects))
	for _, obj := range objects {
		docs = append(docs, model.StoredDocument{
			StoredName:   obj.Key,
			OriginalName: naming.RecoverOriginalName(obj.Key),
			SizeBytes:    obj.Size,
			UploadedAt:   obj.LastModified,
		})
	}
	return docs, nil
}

// SortByUploadedAt orders docs oldest first, breaking ties by stored name.
func SortByUploadedAt(docs []model.StoredDocument) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.Before(docs[j].UploadedAt)
		}
		return docs[i].StoredName < docs[j].StoredName
	})
}
