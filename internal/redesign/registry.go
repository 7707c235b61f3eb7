// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package redesign

import (
	"sync"

	"github.com/google/uuid"

	"interiorai/internal/models"
)

// Registry maps artifact ids to recently generated artifacts so they can
// be liked later. Entries live until Remove or process exit. All methods
// are safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	items map[uuid.UUID]models.DesignArtifact
}

// NewRegistry creates an empty artifact registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[uuid.UUID]models.DesignArtifact)}
}

// Put stores a copy of a.
func (r *Registry) Put(a models.DesignArtifact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
}

// Get returns a copy of the artifact, or ErrArtifactNotFound.
func (r *Registry) Get(id uuid.UUID) (models.DesignArtifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return models.DesignArtifact{}, ErrArtifactNotFound
	}
	return a, nil
}

// Remove deletes the artifact. Removing an unknown id is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// SetLiked updates the cached liked flag.
func (r *Registry) SetLiked(id uuid.UUID, liked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return ErrArtifactNotFound
	}
	a.Liked = liked
	r.items[id] = a
	return nil
}

// Len returns the number of registered artifacts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
