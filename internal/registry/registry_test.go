package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/config"
	"github.com/zclconf/go-cty/cty"
)

type flicker struct {
	Radius    int     `cty:"radius"`
	Intensity float64 `cty:"intensity"`
	Color     string  `cty:"color"`
}

func (*flicker) Name() string { return "LightFlicker" }

type touch struct{}

func (touch) Name() string { return "TouchTrigger" }

func newTestRegistry() *Registry {
	r := New()
	r.RegisterCapability("LightFlicker", &RegisteredCapability{
		New: func() capability.Capability { return &flicker{Radius: 2, Intensity: 1, Color: "white"} },
	})
	r.RegisterCapability("TouchTrigger", &RegisteredCapability{
		New: func() capability.Capability { return touch{} },
	})
	return r
}

func TestRegisterCapability_DuplicatePanics(t *testing.T) {
	r := newTestRegistry()
	assert.Panics(t, func() {
		r.RegisterCapability("TouchTrigger", &RegisteredCapability{
			New: func() capability.Capability { return touch{} },
		})
	})
	assert.Equal(t, []string{"LightFlicker", "TouchTrigger"}, r.Names())
}

func TestInstantiate_MergesOverDefaults(t *testing.T) {
	r := newTestRegistry()
	spec := &config.CapabilitySpec{
		Name:   "LightFlicker",
		Config: cty.ObjectVal(map[string]cty.Value{"radius": cty.NumberIntVal(4)}),
	}

	c, err := r.Instantiate(context.Background(), spec)
	require.NoError(t, err)

	f, ok := c.(*flicker)
	require.True(t, ok)
	assert.Equal(t, 4, f.Radius)
	assert.Equal(t, 1.0, f.Intensity)
	assert.Equal(t, "white", f.Color)
}

func TestInstantiate_FreshValueEachTime(t *testing.T) {
	r := newTestRegistry()
	spec := &config.CapabilitySpec{Name: "LightFlicker"}

	a, err := r.Instantiate(context.Background(), spec)
	require.NoError(t, err)
	b, err := r.Instantiate(context.Background(), spec)
	require.NoError(t, err)

	a.(*flicker).Radius = 99
	assert.Equal(t, 2, b.(*flicker).Radius)
}

func TestInstantiate_Errors(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	testCases := []struct {
		name    string
		spec    *config.CapabilitySpec
		wantErr string
	}{
		{
			name:    "unknown capability",
			spec:    &config.CapabilitySpec{Name: "Nope"},
			wantErr: "unknown capability",
		},
		{
			name: "unsupported attribute",
			spec: &config.CapabilitySpec{
				Name:   "LightFlicker",
				Config: cty.ObjectVal(map[string]cty.Value{"speed": cty.NumberIntVal(1)}),
			},
			wantErr: "unsupported attribute 'speed'",
		},
		{
			name: "wrong type",
			spec: &config.CapabilitySpec{
				Name:   "LightFlicker",
				Config: cty.ObjectVal(map[string]cty.Value{"radius": cty.StringVal("far")}),
			},
			wantErr: "does not match",
		},
		{
			name: "config for non-configurable capability",
			spec: &config.CapabilitySpec{
				Name:   "TouchTrigger",
				Config: cty.ObjectVal(map[string]cty.Value{"x": cty.True}),
			},
			wantErr: "not configurable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Instantiate(ctx, tc.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestInstantiate_EmptyObjectConfig(t *testing.T) {
	r := newTestRegistry()
	c, err := r.Instantiate(context.Background(), &config.CapabilitySpec{
		Name:   "TouchTrigger",
		Config: cty.EmptyObjectVal,
	})
	require.NoError(t, err)
	assert.Equal(t, "TouchTrigger", c.Name())
}

func TestValidateRegistry(t *testing.T) {
	r := newTestRegistry()
	catalog := config.NewCatalog()
	catalog.Triggers["TriggerTouch"] = &config.TriggerDescriptor{
		ID:         "TriggerTouch",
		Components: []*config.CapabilitySpec{{Name: "TouchTrigger"}},
	}
	catalog.Effects["EffectFlicker"] = &config.EffectDescriptor{
		ID: "EffectFlicker",
		Components: []*config.CapabilitySpec{{
			Name:   "LightFlicker",
			Config: cty.ObjectVal(map[string]cty.Value{"color": cty.StringVal("red")}),
		}},
	}
	r.PopulateCatalog(catalog)

	require.NoError(t, r.ValidateRegistry(context.Background()))
}

func TestValidateRegistry_ReportsAllMismatches(t *testing.T) {
	r := newTestRegistry()
	catalog := config.NewCatalog()
	catalog.Triggers["TriggerGas"] = &config.TriggerDescriptor{
		ID:         "TriggerGas",
		Components: []*config.CapabilitySpec{{Name: "GasTrigger"}},
	}
	catalog.Effects["EffectBad"] = &config.EffectDescriptor{
		ID: "EffectBad",
		Permanent: []*config.CapabilitySpec{{
			Name:   "LightFlicker",
			Config: cty.ObjectVal(map[string]cty.Value{"bogus": cty.True}),
		}},
	}
	r.PopulateCatalog(catalog)

	err := r.ValidateRegistry(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trigger.TriggerGas: capability 'GasTrigger' is not registered")
	assert.Contains(t, err.Error(), "effect.EffectBad")
	assert.Contains(t, err.Error(), "bogus")
}
