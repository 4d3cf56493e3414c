package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// loadFromFS reads a definition entry. Names follow fs.ValidPath, so a
// leading "./" is dropped and anything escaping the root is rejected.
func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, errors.New("loader: filesystem is not configured")
	}
	name = strings.TrimPrefix(name, "./")
	if name == "" {
		return nil, errors.New("loader: fs path is required")
	}
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("loader: invalid fs path %q", name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := fs.Stat(filesystem, name)
	if err != nil {
		return nil, fmt.Errorf("loader: stat fs entry %q: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("loader: fs entry %q is a directory", name)
	}
	if info.Size() > maxDocumentBytes {
		return nil, fmt.Errorf("loader: fs entry %q exceeds %d bytes", name, maxDocumentBytes)
	}
	return fs.ReadFile(filesystem, name)
}
