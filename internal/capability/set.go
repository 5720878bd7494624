package capability

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Set holds the capabilities attached to one owner, keyed by name.
type Set struct {
	caps map[string]Capability
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{caps: make(map[string]Capability)}
}

// Attach adds c unless a capability with the same name is already present.
// It reports whether c was added.
func (s *Set) Attach(c Capability) bool {
	if s.caps == nil {
		s.caps = make(map[string]Capability)
	}
	if _, ok := s.caps[c.Name()]; ok {
		return false
	}
	s.caps[c.Name()] = c
	return true
}

// Detach removes the named capability and reports whether it was present.
func (s *Set) Detach(name string) bool {
	if _, ok := s.caps[name]; !ok {
		return false
	}
	delete(s.caps, name)
	return true
}

// Has reports whether the named capability is attached.
func (s *Set) Has(name string) bool {
	_, ok := s.caps[name]
	return ok
}

// Get returns the named capability.
func (s *Set) Get(name string) (Capability, bool) {
	c, ok := s.caps[name]
	return c, ok
}

// Names returns the attached capability names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.caps))
}

// All returns the attached capabilities ordered by name.
func (s *Set) All() []Capability {
	out := make([]Capability, 0, len(s.caps))
	for _, name := range s.Names() {
		out = append(out, s.caps[name])
	}
	return out
}

// Len is the number of attached capabilities.
func (s *Set) Len() int {
	return len(s.caps)
}

// Owner is the object an artifact lives on.
type Owner struct {
	ID   uuid.UUID
	Caps *Set
}

// NewOwner returns an owner with a fresh identity and an empty set.
func NewOwner() *Owner {
	return &Owner{ID: uuid.New(), Caps: NewSet()}
}
