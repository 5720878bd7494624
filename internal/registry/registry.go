package registry

import (
	"maps"
	"slices"

	"github.com/vk/xenoarch/internal/config"
)

// Module is the interface that all capability modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered capability factories and the descriptor
// catalog for a single application instance.
type Registry struct {
	CapabilityRegistry map[string]*RegisteredCapability
	Catalog            *config.Catalog
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		CapabilityRegistry: make(map[string]*RegisteredCapability),
		Catalog:            config.NewCatalog(),
	}
}

// PopulateCatalog merges the loaded descriptors into the registry's catalog.
func (r *Registry) PopulateCatalog(c *config.Catalog) {
	r.Catalog.Merge(c)
}

// Names returns the registered capability names in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.CapabilityRegistry))
}
