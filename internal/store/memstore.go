// Package store holds the in-memory implementations of the external
// collaborators: the user directory, the room catalog and the round
// archive. Production deployments replace these behind the same
// interfaces.
package store

import (
	"fmt"
	"sync"

	"github.com/Diegoc04/BlackRoyaleGame-FORK/internal/room"
)

type Memory struct {
	mu             sync.RWMutex
	users          map[string]room.User
	history        map[string][]room.RoomState
	catalog        []room.CatalogEntry
	defaultBalance int
}

// NewMemory builds the store. When defaultBalance is positive, unknown
// identities are registered on first lookup with that balance; with zero
// the directory is strict and unknown lookups fail.
func NewMemory(defaultBalance int, catalog []room.CatalogEntry) *Memory {
	return &Memory{
		users:          make(map[string]room.User),
		history:        make(map[string][]room.RoomState),
		catalog:        catalog,
		defaultBalance: defaultBalance,
	}
}

func (m *Memory) PutUser(u room.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *Memory) FindUser(id string) (room.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok && m.defaultBalance > 0 {
		u = room.User{ID: id, Name: id, Balance: m.defaultBalance}
		m.users[id] = u
		ok = true
	}
	return u, ok
}

func (m *Memory) UpdateUserBalance(id string, u room.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("unknown user %q", id)
	}
	m.users[id] = u
	return nil
}

func (m *Memory) RecordRoundResult(id string, state room.RoomState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history[id] = append(m.history[id], state)
	return nil
}

// History returns the archived round results for one identity.
func (m *Memory) History(id string) []room.RoomState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]room.RoomState(nil), m.history[id]...)
}

func (m *Memory) InitialRooms() []room.CatalogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]room.CatalogEntry(nil), m.catalog...)
}
