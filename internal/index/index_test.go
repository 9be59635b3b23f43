package index

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docscan/internal/model"
	"docscan/internal/storage"
	storeMocks "docscan/internal/storage/mocks"
)

func TestDocumentIndex_List(t *testing.T) {
	ctx := context.Background()
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	tests := []struct {
		name      string
		objects   []storage.ObjectInfo
		listErr   error
		want      []model.StoredDocument
		wantError bool
	}{
		{
			name:    "empty storage",
			objects: []storage.ObjectInfo{},
			want:    []model.StoredDocument{},
		},
		{
			name: "storage order preserved and names recovered",
			objects: []storage.ObjectInfo{
				{Key: "z_1714557600000.pdf", Size: 10, LastModified: t2},
				{Key: "manual.pdf", Size: 5, LastModified: t1},
			},
			want: []model.StoredDocument{
				{StoredName: "z_1714557600000.pdf", OriginalName: "z.pdf", SizeBytes: 10, UploadedAt: t2},
				{StoredName: "manual.pdf", OriginalName: "manual.pdf", SizeBytes: 5, UploadedAt: t1},
			},
		},
		{
			name:      "storage unreadable",
			listErr:   errors.New("permission denied"),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			if tt.listErr != nil {
				mStore.On("List", mock.Anything).Return(nil, tt.listErr)
			} else {
				mStore.On("List", mock.Anything).Return(tt.objects, nil)
			}

			docs, err := New(mStore).List(ctx)

			if tt.wantError {
				assert.ErrorIs(t, err, ErrStorageUnreadable)
				assert.Contains(t, err.Error(), "permission denied")
				assert.Nil(t, docs)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, docs)
				assert.Equal(t, tt.want, docs)
			}
			mStore.AssertExpectations(t)
		})
	}
}

func TestDocumentIndex_ListLocalEmptyDirectory(t *testing.T) {
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	docs, err := New(store).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestSortByUploadedAt(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	docs := []model.StoredDocument{
		{StoredName: "c", UploadedAt: base.Add(2 * time.Minute)},
		{StoredName: "b", UploadedAt: base},
		{StoredName: "a", UploadedAt: base},
	}

	SortByUploadedAt(docs)

	assert.Equal(t, "a", docs[0].StoredName)
	assert.Equal(t, "b", docs[1].StoredName)
	assert.Equal(t, "c", docs[2].StoredName)
}
