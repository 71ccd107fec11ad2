package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/domain"
)

// Departure describes a room a connection just left and the members still
// in it. The adapter notifies those members that a peer is gone.
type Departure struct {
	Room      domain.RoomID
	Remaining []domain.SessionID
}

// CreateRoom allocates a room with sid as creator and single member. A
// connection that was already in a room is silently moved out of it first;
// the returned Departure is non-nil in that case.
func (o *Orchestrator) CreateRoom(sid domain.SessionID) (domain.RoomID, *Departure) {
	dep := o.leaveCurrent(sid)
	id := o.Rooms.Create(sid)
	o.Registry.SetRoom(sid, id)
	return id, dep
}

// Join adds sid to an existing room. An unknown id fails with
// domain.ErrRoomNotFound and mutates nothing. Rejoining the room the
// connection is already in is a no-op success with no departure. A
// membership in a different room is released only after the target join
// succeeded, so a failed join never evicts the requester.
func (o *Orchestrator) Join(sid domain.SessionID, id domain.RoomID) (*Departure, error) {
	if cur, ok := o.Registry.RoomOf(sid); ok && cur == id {
		return nil, nil
	}
	if err := o.Rooms.Join(id, sid); err != nil {
		return nil, err
	}
	dep := o.leaveCurrent(sid)
	o.Registry.SetRoom(sid, id)
	log.Info().Str("module", "orch").Str("sid", string(sid)).Str("room", string(id)).Msg("joined room")
	return dep, nil
}

// Disconnect tears the connection down: membership is released and the
// connection record removed. No message from sid is serviceable afterwards.
func (o *Orchestrator) Disconnect(sid domain.SessionID) *Departure {
	dep := o.leaveCurrent(sid)
	o.Registry.Unregister(sid)
	return dep
}

func (o *Orchestrator) leaveCurrent(sid domain.SessionID) *Departure {
	id, ok := o.Registry.RoomOf(sid)
	if !ok {
		return nil
	}
	// RemoveMember snapshots the survivors in its own critical section,
	// so the departure cannot list or miss a concurrently joining member.
	remaining := o.Rooms.RemoveMember(id, sid)
	o.Registry.ClearRoom(sid)
	return &Departure{Room: id, Remaining: remaining}
}
