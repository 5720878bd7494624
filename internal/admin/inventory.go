package admin

import (
	"bytes"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/vk/xenoarch/internal/artifact"
)

// Inventory tracks the live artifacts an operator can address by owner id.
type Inventory struct {
	mu        sync.RWMutex
	artifacts map[uuid.UUID]*artifact.Artifact
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{artifacts: make(map[uuid.UUID]*artifact.Artifact)}
}

// Add registers a.
func (inv *Inventory) Add(a *artifact.Artifact) {
	inv.mu.Lock()
	inv.artifacts[a.Owner.ID] = a
	inv.mu.Unlock()
}

// Remove forgets the artifact owned by id.
func (inv *Inventory) Remove(id uuid.UUID) {
	inv.mu.Lock()
	delete(inv.artifacts, id)
	inv.mu.Unlock()
}

// Get returns the artifact owned by id.
func (inv *Inventory) Get(id uuid.UUID) (*artifact.Artifact, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	a, ok := inv.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("no artifact owned by %s", id)
	}
	return a, nil
}

// List returns the owner ids of every tracked artifact in sorted order.
func (inv *Inventory) List() []uuid.UUID {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(inv.artifacts))
	for id := range inv.artifacts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

