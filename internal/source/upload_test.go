package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadCandidates(t *testing.T) {
	got := UploadCandidates("up", DefaultRegistry(Options{}))
	assert.Contains(t, got, filepath.Join("up", "source.xlsx"))
	assert.Contains(t, got, filepath.Join("up", "source.csv"))
	assert.Nil(t, UploadCandidates("", DefaultRegistry(Options{})))
}

func TestStore_InstallsUploadAheadOfCandidates(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	base := writeFile(t, dir, "data.csv", []byte("轴号\nBASE-1\n"))

	n := newTestLoader(t).normalizer
	readers := DefaultRegistry(Options{})
	loader := NewLoader(append(UploadCandidates(uploads, readers), base), readers, n)

	require.NoError(t, os.MkdirAll(uploads, 0o755))
	writeFile(t, uploads, "source.txt", []byte("轴号\nSTALE\n"))

	set, err := Store(context.Background(), loader, uploads, "new.csv", strings.NewReader("轴号\nUP-1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, set.Len())

	_, err = os.Stat(filepath.Join(uploads, "source.txt"))
	assert.True(t, os.IsNotExist(err), "previous upload should be removed")

	loaded, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(uploads, "source.csv"), loaded.Source())
	assert.Equal(t, "UP-1", loaded.At(0).Identifier)
}

func TestStore_RejectsBadUpload(t *testing.T) {
	uploads := t.TempDir()
	loader := newTestLoader(t)

	_, err := Store(context.Background(), loader, uploads, "bad.csv", strings.NewReader("名称\nx\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected upload")

	entries, err := os.ReadDir(uploads)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_UnsupportedType(t *testing.T) {
	_, err := Store(context.Background(), newTestLoader(t), t.TempDir(), "x.pdf", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported upload type")
}
