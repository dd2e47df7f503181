package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickbook/tickbook/internal/common"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

func TestScanCollectsMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Work/2024-03-04 Alpha - Beta.md", "a")
	writeFile(t, root, "Work/Nested/(Work) ProjectX.md", "b")
	writeFile(t, root, "notes.txt", "ignored")
	writeFile(t, root, "image.png", "ignored")

	files, err := Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, files, 2)

	paths := []string{files[0].Path, files[1].Path}
	assert.Contains(t, paths, "Work/2024-03-04 Alpha - Beta.md")
	assert.Contains(t, paths, "Work/Nested/(Work) ProjectX.md")
	for _, f := range files {
		assert.NotContains(t, f.Path, "\\", "paths must be slash separated")
	}
}

func TestScanMissingFolder(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.True(t, errors.Is(err, common.ErrFolderNotFound))
}

func TestScanEmptyFolder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "only.txt", "not markdown")

	_, err := Scan(context.Background(), root)
	assert.True(t, errors.Is(err, common.ErrNoActivityFiles))
}

func TestScanCanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, root)
	assert.Error(t, err)
}
