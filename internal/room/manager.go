package room

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// CatalogEntry describes a pre-configured table in the external room
// catalog.
type CatalogEntry struct {
	ID         string
	MinPlayers int
	MaxPlayers int
}

// Catalog provides the initial set of rooms, fetched lazily on the first
// connection.
type Catalog interface {
	InitialRooms() []CatalogEntry
}

// Manager is the process-wide room registry. Rooms are created on first
// join to an unknown id or seeded from the catalog; they are reset when
// emptied but never removed.
type Manager struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	minPlayers int
	maxPlayers int
	newEngine  EngineFactory
	seedOnce   sync.Once
	log        *zap.SugaredLogger
}

func NewManager(minPlayers, maxPlayers int, factory EngineFactory, log *zap.SugaredLogger) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		minPlayers: minPlayers,
		maxPlayers: maxPlayers,
		newEngine:  factory,
		log:        log,
	}
}

func (m *Manager) Get(id string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	return r, ok
}

func (m *Manager) GetOrCreate(id string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		r = New(id, m.minPlayers, m.maxPlayers, m.newEngine)
		m.rooms[id] = r
		m.log.Infow("room created", "room", id)
	}
	return r
}

// EnsureSeeded loads the catalog exactly once. Entries with zero bounds
// fall back to the manager defaults.
func (m *Manager) EnsureSeeded(catalog Catalog) {
	m.seedOnce.Do(func() {
		entries := catalog.InitialRooms()
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, e := range entries {
			if _, ok := m.rooms[e.ID]; ok {
				continue
			}
			minP, maxP := e.MinPlayers, e.MaxPlayers
			if minP <= 0 {
				minP = m.minPlayers
			}
			if maxP <= 0 {
				maxP = m.maxPlayers
			}
			m.rooms[e.ID] = New(e.ID, minP, maxP, m.newEngine)
		}
		m.log.Infow("rooms seeded from catalog", "count", len(entries))
	})
}

// Snapshots projects every registered room, ordered by id for stable
// client output.
func (m *Manager) Snapshots() []RoomState {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool { return rooms[i].id < rooms[j].id })
	out := make([]RoomState, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Snapshot())
	}
	return out
}
