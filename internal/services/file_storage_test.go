package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoredName_Unique(t *testing.T) {
	a := StoredName("photo.png")
	b := StoredName("photo.png")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "_photo.png"))
}

func TestStoredName_StripsDirectories(t *testing.T) {
	name := StoredName("../../etc/passwd")

	assert.True(t, strings.HasSuffix(name, "_passwd"))
	assert.NotContains(t, name, "/")
}

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/static")
	require.NoError(t, err)

	url, err := storage.Save(context.Background(), "images", "photo.png", strings.NewReader("pixels"), 6)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/static/images/"))
	assert.True(t, strings.HasSuffix(url, "_photo.png"))

	onDisk := filepath.Join(dir, "images", filepath.Base(url))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestLocalStorage_SameFilenameNoOverwrite(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "/static")
	require.NoError(t, err)

	first, err := storage.Save(context.Background(), "files", "manual.pdf", strings.NewReader("v1"), 2)
	require.NoError(t, err)
	second, err := storage.Save(context.Background(), "files", "manual.pdf", strings.NewReader("v2"), 2)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(filepath.Join(dir, "files"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
