// Package scanner enumerates activity files from disk. It is the thin I/O
// collaborator in front of the pure parsing pipeline: it only finds and reads
// files, it never interprets them.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tickbook/tickbook/internal/common"
	"github.com/tickbook/tickbook/internal/parser"
)

// Scan walks a folder and reads every Markdown file under it, returning
// (path, content) pairs with folder-relative, slash-separated paths. Unreadable
// files are logged and skipped; they never abort the scan.
func Scan(ctx context.Context, folder string) ([]parser.File, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", common.ErrFolderNotFound, folder)
	}

	var files []parser.File
	err = filepath.WalkDir(folder, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		content, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("Skipping unreadable file", "path", p, "error", err)
			return nil
		}
		rel, err := filepath.Rel(folder, p)
		if err != nil {
			rel = p
		}
		files = append(files, parser.File{
			Path:    filepath.ToSlash(rel),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk folder: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", common.ErrNoActivityFiles, folder)
	}

	slog.Debug("Scanned folder", "folder", folder, "files", len(files))
	return files, nil
}
