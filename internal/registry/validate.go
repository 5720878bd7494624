package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vk/xenoarch/internal/ctxlog"
)

// ValidateRegistry performs a strict parity check between the catalog and Go
// code. Every referenced capability must be registered and its stored
// configuration must decode into the Go type. All mismatches are reported at once.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)
	used := make(map[string]struct{})

	specs := r.Catalog.Specs()
	for _, owner := range slices.Sorted(maps.Keys(specs)) {
		for _, spec := range specs[owner] {
			used[spec.Name] = struct{}{}
			if _, ok := r.CapabilityRegistry[spec.Name]; !ok {
				errs = append(errs, fmt.Sprintf("%s: capability '%s' is not registered", owner, spec.Name))
				continue
			}
			if _, err := r.Instantiate(ctx, spec); err != nil {
				errs = append(errs, fmt.Sprintf("%s: %v", owner, err))
			}
		}
	}

	for _, name := range r.Names() {
		if _, ok := used[name]; !ok {
			logger.Warn("Registered capability is not referenced by any descriptor.", "capability", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
