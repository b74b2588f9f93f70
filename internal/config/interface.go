package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the model.
	Load(ctx context.Context, path string) (*Model, error)
}

// Registry maps file extensions, with the leading dot, to loaders.
type Registry map[string]Loader

// Load picks a loader by the extension of path and runs it.
func (r Registry) Load(ctx context.Context, path string) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := r[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported config file %s: extension %q is not one of %s", path, ext, r.extensions())
	}
	return loader.Load(ctx, path)
}

func (r Registry) extensions() string {
	exts := make([]string, 0, len(r))
	for ext := range r {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}
