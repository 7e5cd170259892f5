package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	payload := "conteudo do anexo"
	url, err := store.Save(context.Background(), "relatorio.pdf", "application/pdf", strings.NewReader(payload), int64(len(payload)))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/"))
	require.True(t, strings.HasSuffix(url, ".pdf"), "original extension kept: %s", url)

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	require.Equal(t, payload, string(data))
}

func TestDiskStoreUniqueKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir, "/uploads")
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "foto.png", "image/png", strings.NewReader("a"), 1)
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "foto.png", "image/png", strings.NewReader("b"), 1)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestObjectKeyLowercasesExtension(t *testing.T) {
	key := objectKey("FOTO.PNG")
	require.True(t, strings.HasSuffix(key, ".png"))
}
