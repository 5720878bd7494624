package triggers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/hcl"
	"github.com/vk/xenoarch/internal/registry"
)

func TestCatalogMatchesRegistry(t *testing.T) {
	ctx := context.Background()
	r := registry.New()
	(&Module{}).Register(r)

	catalog, err := hcl.NewLoader().LoadFS(ctx, Catalog)
	require.NoError(t, err)
	r.PopulateCatalog(catalog)

	require.NoError(t, r.ValidateRegistry(ctx))
	assert.Len(t, catalog.Triggers, 7)
}

func TestGasTrigger(t *testing.T) {
	ctx := context.Background()
	r := registry.New()
	(&Module{}).Register(r)
	catalog, err := hcl.NewLoader().LoadFS(ctx, Catalog)
	require.NoError(t, err)
	d, err := catalog.Trigger("TriggerPlasma")
	require.NoError(t, err)

	c, err := r.Instantiate(ctx, d.Components[0])
	require.NoError(t, err)
	h := c.(capability.StimulusHandler)

	assert.False(t, h.HandleStimulus(ctx, capability.Stimulus{Kind: capability.StimulusGas, Detail: "plasma", Magnitude: 1}))
	assert.False(t, h.HandleStimulus(ctx, capability.Stimulus{Kind: capability.StimulusGas, Detail: "oxygen", Magnitude: 10}))
	assert.False(t, h.HandleStimulus(ctx, capability.Stimulus{Kind: capability.StimulusTouch}))
	assert.True(t, h.HandleStimulus(ctx, capability.Stimulus{Kind: capability.StimulusGas, Detail: "plasma", Magnitude: 2}))
}

func TestDamageTrigger_Accumulates(t *testing.T) {
	ctx := context.Background()
	d := &DamageTrigger{Threshold: 50, DamageType: "brute"}
	hit := capability.Stimulus{Kind: capability.StimulusDamage, Detail: "brute", Magnitude: 20}

	assert.False(t, d.HandleStimulus(ctx, hit))
	assert.False(t, d.HandleStimulus(ctx, hit))
	assert.False(t, d.HandleStimulus(ctx, capability.Stimulus{Kind: capability.StimulusDamage, Detail: "burn", Magnitude: 100}))
	assert.True(t, d.HandleStimulus(ctx, hit))
	assert.False(t, d.HandleStimulus(ctx, hit), "counter resets after firing")
}

func TestSimpleTriggers(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name    string
		handler capability.StimulusHandler
		accept  capability.Stimulus
		reject  capability.Stimulus
	}{
		{"touch", &TouchTrigger{}, capability.Stimulus{Kind: capability.StimulusTouch}, capability.Stimulus{Kind: capability.StimulusHeat}},
		{"heat", &HeatTrigger{MinTemperature: 373}, capability.Stimulus{Kind: capability.StimulusHeat, Magnitude: 400}, capability.Stimulus{Kind: capability.StimulusHeat, Magnitude: 300}},
		{"pressure", &PressureTrigger{Min: 50, Max: 385}, capability.Stimulus{Kind: capability.StimulusPressure, Magnitude: 20}, capability.Stimulus{Kind: capability.StimulusPressure, Magnitude: 101}},
		{"magnet", &MagnetTrigger{}, capability.Stimulus{Kind: capability.StimulusMagnet}, capability.Stimulus{Kind: capability.StimulusTouch}},
		{"death", &DeathTrigger{}, capability.Stimulus{Kind: capability.StimulusDeath}, capability.Stimulus{Kind: capability.StimulusDamage}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.handler.HandleStimulus(ctx, tc.accept))
			assert.False(t, tc.handler.HandleStimulus(ctx, tc.reject))
		})
	}
}
