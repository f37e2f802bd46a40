// Package session binds transient connection ids to durable player
// identities and to the room a connection has joined.
package session

import "sync"

type Registry struct {
	mu         sync.Mutex
	identities map[string]string // connID -> player identity
	rooms      map[string]string // connID -> roomID
}

func NewRegistry() *Registry {
	return &Registry{
		identities: make(map[string]string),
		rooms:      make(map[string]string),
	}
}

// Bind registers identity for connID. If the identity is already bound to a
// different connection, that stale binding is dropped. The stale socket is
// not closed here; its next disconnect resolves as a no-op.
func (r *Registry) Bind(connID, identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c, id := range r.identities {
		if id == identity && c != connID {
			delete(r.identities, c)
		}
	}
	r.identities[connID] = identity
}

// BindRoom records which room connID is currently joined to.
func (r *Registry) BindRoom(connID, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[connID] = roomID
}

// UnbindRoom clears the room binding, keeping the identity binding.
func (r *Registry) UnbindRoom(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, connID)
}

func (r *Registry) Identity(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.identities[connID]
	return id, ok
}

func (r *Registry) Room(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roomID, ok := r.rooms[connID]
	return roomID, ok
}

// Release removes both bindings for connID and returns whatever was bound.
// Releasing an unknown connection returns empty strings.
func (r *Registry) Release(connID string) (identity, roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity = r.identities[connID]
	roomID = r.rooms[connID]
	delete(r.identities, connID)
	delete(r.rooms, connID)
	return identity, roomID
}
