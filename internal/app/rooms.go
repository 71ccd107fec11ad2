package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/core"
	"github.com/signcall/signcall/internal/domain"
)

// RoomStore is the in-memory room table. Every read-modify-write sequence
// happens under the store lock, so callers never observe a half-applied
// join or removal.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[domain.RoomID]*domain.Room)}
}

// Create allocates a fresh room with the creator as its single member and
// returns the new id. Ids are regenerated until unused; the loop runs
// inside the lock so two concurrent creates cannot race on the same id.
func (s *RoomStore) Create(creator domain.SessionID) domain.RoomID {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id domain.RoomID
	for {
		id = domain.RoomID(uuid.NewString()[:domain.RoomIDLen])
		if _, taken := s.rooms[id]; !taken {
			break
		}
	}
	s.rooms[id] = &domain.Room{
		ID:      id,
		Creator: creator,
		Members: []domain.SessionID{creator},
	}
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("sid", string(creator)).Msg("room created")
	return id
}

// Join appends the connection to the member sequence. Joining a room the
// connection is already a member of is a no-op success.
func (s *RoomStore) Join(id domain.RoomID, sid domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return domain.ErrRoomNotFound
	}
	for _, m := range room.Members {
		if m == sid {
			return nil
		}
	}
	room.Members = append(room.Members, sid)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("sid", string(sid)).Msg("member joined")
	return nil
}

// RemoveMember drops the connection from the member sequence if present
// and returns a snapshot of the members still in the room, taken in the
// same critical section so callers get a departure view no concurrent
// join can skew. A room whose member sequence empties is deleted here
// too; the snapshot is then nil.
func (s *RoomStore) RemoveMember(id domain.RoomID, sid domain.SessionID) []domain.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil
	}
	for i, m := range room.Members {
		if m == sid {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}
	if len(room.Members) == 0 {
		delete(s.rooms, id)
		log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room deleted")
		return nil
	}
	remaining := make([]domain.SessionID, len(room.Members))
	copy(remaining, room.Members)
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Str("sid", string(sid)).Int("remaining", len(remaining)).Msg("member removed")
	return remaining
}

func (s *RoomStore) Exists(id domain.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok
}

// Members returns a copy of the member sequence in join order.
func (s *RoomStore) Members(id domain.RoomID) ([]domain.SessionID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, false
	}
	out := make([]domain.SessionID, len(room.Members))
	copy(out, room.Members)
	return out, true
}

// MembersExcept returns the member sequence minus one excluded id, for
// skip-sender delivery.
func (s *RoomStore) MembersExcept(id domain.RoomID, except domain.SessionID) []domain.SessionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil
	}
	out := make([]domain.SessionID, 0, len(room.Members))
	for _, m := range room.Members {
		if m != except {
			out = append(out, m)
		}
	}
	return out
}

func (s *RoomStore) List() []core.RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(s.rooms))
	for id, room := range s.rooms {
		out = append(out, core.RoomInfo{ID: id, MemberCount: len(room.Members)})
	}
	return out
}
