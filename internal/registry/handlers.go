package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/xenoarch/internal/capability"
)

// RegisteredCapability holds the compiled Go part of a capability.
type RegisteredCapability struct {
	// New returns a capability carrying its default configuration. Configurable
	// capabilities return a pointer to a struct whose fields have cty tags.
	New func() capability.Capability
}

// RegisterCapability registers the factory for a capability name.
func (r *Registry) RegisterCapability(name string, handler *RegisteredCapability) {
	if _, exists := r.CapabilityRegistry[name]; exists {
		panic(fmt.Sprintf("capability with name '%s' already registered", name))
	}
	if handler == nil || handler.New == nil {
		panic(fmt.Sprintf("capability '%s' registered without a factory", name))
	}
	slog.Debug("Registering capability.", "name", name)
	r.CapabilityRegistry[name] = handler
}
