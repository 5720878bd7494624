package config

import (
	"context"
	"io/fs"
)

// Loader is the interface for any component that can load descriptor
// catalogs and translate them into the format-agnostic Catalog.
type Loader interface {
	// Load parses catalogs found under the given files or directories.
	Load(ctx context.Context, paths ...string) (*Catalog, error)
	// LoadFS parses catalogs embedded in fsys.
	LoadFS(ctx context.Context, fsys fs.FS) (*Catalog, error)
}
