package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"docscan/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (Storage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocal(dir)
	require.NoError(t, err)
	return s, dir
}

func TestNewLocal(t *testing.T) {
	_, err := NewLocal("")
	assert.Error(t, err)

	nested := filepath.Join(t.TempDir(), "a", "b")
	s, err := NewLocal(nested)
	require.NoError(t, err)
	assert.NoError(t, s.PingContext(context.Background()))
	assert.DirExists(t, nested)
}

func TestLocal_PutGetDelete(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	info, err := s.Put(ctx, "report_1000.pdf", strings.NewReader("%PDF-1.4"), PutObjectOptions{Size: 8})
	require.NoError(t, err)
	assert.Equal(t, "report_1000.pdf", info.Key)
	assert.Equal(t, int64(8), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.FileExists(t, filepath.Join(dir, "report_1000.pdf"))

	rc, got, err := s.Get(ctx, "report_1000.pdf")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), got.Size)

	require.NoError(t, s.Delete(ctx, "report_1000.pdf"))
	require.NoError(t, s.Delete(ctx, "report_1000.pdf"))

	_, _, err = s.Get(ctx, "report_1000.pdf")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_PutOverwritesLastWriteWins(t *testing.T) {
	s, _ := newLocal(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "a_1.txt", strings.NewReader("first"), PutObjectOptions{Size: -1})
	require.NoError(t, err)
	_, err = s.Put(ctx, "a_1.txt", strings.NewReader("second"), PutObjectOptions{Size: -1})
	require.NoError(t, err)

	rc, _, err := s.Get(ctx, "a_1.txt")
	require.NoError(t, err)
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "second", string(body))

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLocal_KeyCannotEscapeDirectory(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	_, err := s.Put(ctx, "../escape.txt", strings.NewReader("x"), PutObjectOptions{Size: 1})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "escape.txt"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape.txt"))
}

func TestLocal_List(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_2.pdf"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_1.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, partialDir, "upload-123"), []byte("partial"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	items, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a_1.txt", items[0].Key)
	assert.Equal(t, int64(1), items[0].Size)
	assert.Equal(t, "b_2.pdf", items[1].Key)
	assert.False(t, items[1].LastModified.IsZero())
}

func TestLocal_ListUnreadable(t *testing.T) {
	s, dir := newLocal(t)
	require.NoError(t, os.RemoveAll(dir))

	items, err := s.List(context.Background())
	assert.Error(t, err)
	assert.Nil(t, items)
	assert.Error(t, s.PingContext(context.Background()))
}

func TestLocal_ConcurrentPuts(t *testing.T) {
	s, _ := newLocal(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Put(ctx, "same_1.txt", strings.NewReader("payload"), PutObjectOptions{Size: 7})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].Size)
}

func TestLocal_CanceledContext(t *testing.T) {
	s, _ := newLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Put(ctx, "x_1.txt", strings.NewReader("x"), PutObjectOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "", normalizePrefix(""))
	assert.Equal(t, "", normalizePrefix("/"))
	assert.Equal(t, "uploads/", normalizePrefix("uploads"))
	assert.Equal(t, "uploads/", normalizePrefix("/uploads//"))
	assert.Equal(t, "a/b/", normalizePrefix("a/b"))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	s, err := New(config.StorageConfig{Backend: "local", UploadDir: dir}, config.MinIOConfig{})
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = New(config.StorageConfig{Backend: "minio"}, config.MinIOConfig{})
	assert.ErrorContains(t, err, "minio endpoint is required")

	_, err = New(config.StorageConfig{Backend: "ftp"}, config.MinIOConfig{})
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestLocal_PartialUploadsUnreachable(t *testing.T) {
	s, dir := newLocal(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, partialDir, "upload-1"), []byte("half"), 0o644))

	_, _, err := s.Get(ctx, partialDir)
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = s.Get(ctx, "upload-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// a document whose name looks like a temp file is an ordinary document
	_, err = s.Put(ctx, ".upload-x_1.pdf", strings.NewReader("%PDF"), PutObjectOptions{Size: 4})
	require.NoError(t, err)
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ".upload-x_1.pdf", items[0].Key)

	entries, err := os.ReadDir(filepath.Join(dir, partialDir))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
