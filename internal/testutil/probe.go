package testutil

import (
	"context"
	"sync"

	"github.com/vk/xenoarch/internal/capability"
	"github.com/vk/xenoarch/internal/registry"
)

// ProbeLog records what probe capabilities observed.
type ProbeLog struct {
	mu          sync.Mutex
	Activations []ProbeActivation
	Stimuli     []capability.Stimulus
}

// ProbeActivation is one activation seen by a named probe.
type ProbeActivation struct {
	Capability string
	capability.Activation
}

// ActivatedBy returns the names of probes that saw activations, in order.
func (l *ProbeLog) ActivatedBy() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.Activations))
	for i, a := range l.Activations {
		out[i] = a.Capability
	}
	return out
}

// Probe is a capability that records activations and accepts one stimulus kind.
type Probe struct {
	CapName string
	Accepts capability.StimulusKind
	Log     *ProbeLog
}

func (p *Probe) Name() string { return p.CapName }

func (p *Probe) OnActivated(_ context.Context, a capability.Activation) {
	p.Log.mu.Lock()
	p.Log.Activations = append(p.Log.Activations, ProbeActivation{Capability: p.CapName, Activation: a})
	p.Log.mu.Unlock()
}

func (p *Probe) HandleStimulus(_ context.Context, s capability.Stimulus) bool {
	p.Log.mu.Lock()
	p.Log.Stimuli = append(p.Log.Stimuli, s)
	p.Log.mu.Unlock()
	return p.Accepts != "" && s.Kind == p.Accepts
}

// ProbeModule registers one Probe capability per name. Every probe shares Log.
type ProbeModule struct {
	Names   []string
	Accepts map[string]capability.StimulusKind
	Log     *ProbeLog
}

// NewProbeModule returns a module with a fresh log.
func NewProbeModule(names ...string) *ProbeModule {
	return &ProbeModule{
		Names:   names,
		Accepts: make(map[string]capability.StimulusKind),
		Log:     &ProbeLog{},
	}
}

// Register implements the registry.Module interface.
func (m *ProbeModule) Register(r *registry.Registry) {
	for _, name := range m.Names {
		r.RegisterCapability(name, &registry.RegisteredCapability{
			New: func() capability.Capability {
				return &Probe{CapName: name, Accepts: m.Accepts[name], Log: m.Log}
			},
		})
	}
}

// SimpleModule registers a single capability.
type SimpleModule struct {
	Name       string
	Capability *registry.RegisteredCapability
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Name != "" && m.Capability != nil {
		r.RegisterCapability(m.Name, m.Capability)
	}
}
