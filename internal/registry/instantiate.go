package registry

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var ErrUnknownCapability = errors.New("unknown capability")

// Instantiate creates a fresh capability for spec and merges the stored
// configuration over the factory defaults.
func (r *Registry) Instantiate(ctx context.Context, spec *config.CapabilitySpec) (capability.Capability, error) {
	reg, ok := r.CapabilityRegistry[spec.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCapability, spec.Name)
	}
	c := reg.New()
	if c.Name() != spec.Name {
		return nil, fmt.Errorf("capability factory for '%s' produced '%s'", spec.Name, c.Name())
	}
	if isEmptyConfig(spec.Config) {
		return c, nil
	}
	if err := applyConfig(c, spec.Config); err != nil {
		return nil, fmt.Errorf("capability '%s': %w", spec.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Instantiated capability with configuration.", "name", spec.Name)
	return c, nil
}

func isEmptyConfig(v cty.Value) bool {
	if v.IsNull() {
		return true
	}
	ty := v.Type()
	return (ty.IsObjectType() || ty.IsMapType()) && v.IsKnown() && v.LengthInt() == 0
}

// applyConfig overlays cfg on the struct behind target. Attributes the struct
// does not declare are rejected.
func applyConfig(target capability.Capability, cfg cty.Value) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("configuration given but %T is not configurable", target)
	}
	if !cfg.Type().IsObjectType() && !cfg.Type().IsMapType() {
		return fmt.Errorf("configuration must be an object, got %s", cfg.Type().FriendlyName())
	}
	if !cfg.IsWhollyKnown() {
		return fmt.Errorf("configuration contains unknown values")
	}

	current := rv.Elem().Interface()
	ty, err := gocty.ImpliedType(current)
	if err != nil {
		return fmt.Errorf("could not imply cty type from %T: %w", target, err)
	}
	defaults, err := gocty.ToCtyValue(current, ty)
	if err != nil {
		return fmt.Errorf("could not read defaults of %T: %w", target, err)
	}

	attrs := defaults.AsValueMap()
	if attrs == nil {
		attrs = make(map[string]cty.Value)
	}
	for name, v := range cfg.AsValueMap() {
		if !ty.HasAttribute(name) {
			return fmt.Errorf("unsupported attribute '%s'", name)
		}
		attrs[name] = v
	}

	merged, err := convert.Convert(cty.ObjectVal(attrs), ty)
	if err != nil {
		return fmt.Errorf("configuration does not match %T: %w", target, err)
	}
	if err := gocty.FromCtyValue(merged, target); err != nil {
		return fmt.Errorf("could not decode configuration into %T: %w", target, err)
	}
	return nil
}
