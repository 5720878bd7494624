package hcl

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/vk/xenoarch/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL catalog loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found under the given paths. Paths may be files
// or directories; missing paths are skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	c := newCollector()
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file, err)
		}
		if err := c.parse(ctx, src, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "triggers", len(c.catalog.Triggers), "effects", len(c.catalog.Effects))
	return c.catalog, nil
}

// LoadFS parses every .hcl file in fsys. It is used for catalogs embedded in
// the binary.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) (*config.Catalog, error) {
	files, err := fsutil.FindFilesByExtension(fsys, ".", ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk catalog filesystem: %w", err)
	}

	c := newCollector()
	for _, file := range files {
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file, err)
		}
		if err := c.parse(ctx, src, file); err != nil {
			return nil, err
		}
	}
	ctxlog.FromContext(ctx).Debug("Embedded catalog loaded.", "files", len(files), "triggers", len(c.catalog.Triggers), "effects", len(c.catalog.Effects))
	return c.catalog, nil
}

// collector accumulates descriptors from several files and rejects ids
// defined twice.
type collector struct {
	parser  *hclparse.Parser
	catalog *config.Catalog
	origin  map[string]string
}

func newCollector() *collector {
	return &collector{
		parser:  hclparse.NewParser(),
		catalog: config.NewCatalog(),
		origin:  make(map[string]string),
	}
}

func (c *collector) parse(ctx context.Context, src []byte, filename string) error {
	hclFile, diags := c.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	for _, t := range root.Triggers {
		if err := c.claim(config.KindTrigger, t.ID, filename); err != nil {
			return err
		}
		def, err := translateTrigger(ctx, t)
		if err != nil {
			return err
		}
		c.catalog.Triggers[def.ID] = def
	}
	for _, e := range root.Effects {
		if err := c.claim(config.KindEffect, e.ID, filename); err != nil {
			return err
		}
		def, err := translateEffect(ctx, e)
		if err != nil {
			return err
		}
		c.catalog.Effects[def.ID] = def
	}
	return nil
}

func (c *collector) claim(kind config.Kind, id, filename string) error {
	key := string(kind) + "." + id
	if prev, ok := c.origin[key]; ok {
		return fmt.Errorf("%s '%s' in %s already defined in %s", kind, id, filename, prev)
	}
	c.origin[key] = filename
	return nil
}
