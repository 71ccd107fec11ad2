package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/core"
	"github.com/signcall/signcall/internal/domain"
)

type connEntry struct {
	Room domain.RoomID
	Conn core.SignalConnection
}

// Registry tracks live connections and their current room association.
// Cross-references to rooms are by identifier only; a stale room id
// resolves to "not found" at the store, never to a dangling pointer.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.SessionID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.SessionID]*connEntry)}
}

// Register records a new connection with no room. Re-registering an
// existing id resets it to the room-less state.
func (r *Registry) Register(sid domain.SessionID, conn core.SignalConnection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[sid] = &connEntry{Conn: conn}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered connection")
}

func (r *Registry) Unregister(sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unregistered connection")
}

func (r *Registry) RoomOf(sid domain.SessionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[sid]
	if !ok || e.Room == "" {
		return "", false
	}
	return e.Room, true
}

func (r *Registry) SetRoom(sid domain.SessionID, id domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[sid]; ok {
		e.Room = id
		log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(id)).Msg("set room")
	}
}

func (r *Registry) ClearRoom(sid domain.SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[sid]; ok {
		e.Room = ""
	}
}

func (r *Registry) Conn(sid domain.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// Conns resolves session ids to live transports. Ids that disconnected
// since the caller took its snapshot are skipped, not errors.
func (r *Registry) Conns(sids []domain.SessionID) []core.SignalConnection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.SignalConnection, 0, len(sids))
	for _, sid := range sids {
		if e, ok := r.conns[sid]; ok {
			out = append(out, e.Conn)
		}
	}
	return out
}
