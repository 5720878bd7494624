package testutil

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/hcl"
	"github.com/vk/xenoarch/internal/registry"
)

// Catalog parses an HCL catalog held in a string.
func Catalog(t *testing.T, src string) *config.Catalog {
	t.Helper()
	fsys := fstest.MapFS{"catalog.hcl": {Data: []byte(src)}}
	catalog, err := hcl.NewLoader().LoadFS(context.Background(), fsys)
	require.NoError(t, err)
	return catalog
}

// Registry builds a validated registry from modules and an HCL catalog.
func Registry(t *testing.T, src string, modules ...registry.Module) *registry.Registry {
	t.Helper()
	r := registry.New()
	for _, m := range modules {
		m.Register(r)
	}
	r.PopulateCatalog(Catalog(t, src))
	require.NoError(t, r.ValidateRegistry(context.Background()))
	return r
}
