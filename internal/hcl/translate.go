package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/xenoarch/internal/config"
	"github.com/vk/xenoarch/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext exposes a few pure functions to component attributes, e.g.
// `color = upper("purple")` or `radius = max(2, 3)`.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"min":    stdlib.MinFunc,
			"max":    stdlib.MaxFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

func translateTrigger(ctx context.Context, t *Trigger) (*config.TriggerDescriptor, error) {
	ctxlog.FromContext(ctx).Debug("Translating trigger descriptor.", "id", t.ID)
	components, err := translateComponents(ctx, t.Components, "trigger", t.ID)
	if err != nil {
		return nil, err
	}
	return &config.TriggerDescriptor{
		ID:          t.ID,
		Description: t.Description,
		Tip:         t.Tip,
		TargetDepth: t.TargetDepth,
		Components:  components,
	}, nil
}

func translateEffect(ctx context.Context, e *Effect) (*config.EffectDescriptor, error) {
	ctxlog.FromContext(ctx).Debug("Translating effect descriptor.", "id", e.ID)
	components, err := translateComponents(ctx, e.Components, "effect", e.ID)
	if err != nil {
		return nil, err
	}
	permanent, err := translateComponents(ctx, e.Permanent, "effect", e.ID)
	if err != nil {
		return nil, err
	}
	return &config.EffectDescriptor{
		ID:          e.ID,
		Description: e.Description,
		TargetDepth: e.TargetDepth,
		Components:  components,
		Permanent:   permanent,
	}, nil
}

func translateComponents(ctx context.Context, in []*Component, ownerKind, ownerID string) ([]*config.CapabilitySpec, error) {
	out := make([]*config.CapabilitySpec, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, comp := range in {
		if _, dup := seen[comp.Name]; dup {
			return nil, fmt.Errorf("%s '%s': component '%s' listed twice", ownerKind, ownerID, comp.Name)
		}
		seen[comp.Name] = struct{}{}

		val, err := bodyToObject(comp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s '%s', component '%s': %w", ownerKind, ownerID, comp.Name, err)
		}
		out = append(out, &config.CapabilitySpec{Name: comp.Name, Config: val})
	}
	return out, nil
}

// bodyToObject evaluates every attribute of a component body into one cty
// object. Nested blocks are rejected.
func bodyToObject(body hcl.Body) (cty.Value, error) {
	if body == nil {
		return cty.EmptyObjectVal, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if len(attrs) == 0 {
		return cty.EmptyObjectVal, nil
	}

	evalCtx := evalContext()
	vals := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		v, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("attribute '%s': %w", name, diags)
		}
		vals[name] = v
	}
	return cty.ObjectVal(vals), nil
}
