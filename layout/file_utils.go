package layout

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ResolvePath makes a relative layout path relative to baseDir, normally the
// directory of the config file that named it. An empty baseDir leaves path
// relative to the working directory.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}

	return filepath.Join(baseDir, path)
}

func OpenPath(path, baseDir string) (*os.File, error) {
	resolved := ResolvePath(path, baseDir)

	if resolved == path {
		slog.InfoContext(ctx, "Opening layout file", "path", path)
	} else {
		slog.InfoContext(ctx, "Opening relative layout file", "path", path, "resolved", resolved)
	}

	file, err := os.Open(resolved)
	if err != nil {
		return nil, fmt.Errorf("could not open file %s: %w", resolved, err)
	}

	return file, nil
}
