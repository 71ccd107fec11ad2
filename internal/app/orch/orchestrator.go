// Package orch glues the connection registry and the room store together:
// room lifecycle, signaling relay and detection fan-out all go through the
// Orchestrator so membership reads and deliveries stay consistent.
package orch

import (
	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/core"
	"github.com/signcall/signcall/internal/domain"
)

type Orchestrator struct {
	Registry core.Registry
	Rooms    core.RoomStore
}

// Relay forwards a prepared frame to every member of the room except the
// sender. An unknown room means there is no peer to deliver to; the frame
// is dropped, not surfaced as an error. Returns the delivery count.
func (o *Orchestrator) Relay(from domain.SessionID, id domain.RoomID, frame core.Frame) int {
	if !o.Rooms.Exists(id) {
		log.Debug().Str("module", "orch").Str("room", string(id)).Msg("relay to unknown room dropped")
		return 0
	}
	return o.deliver(o.Rooms.MembersExcept(id, from), frame)
}

// BroadcastRoom delivers a frame to every member of the room, sender
// included. Detection results use this; unlike the relay, the requester
// must see its own result.
func (o *Orchestrator) BroadcastRoom(id domain.RoomID, frame core.Frame) int {
	members, ok := o.Rooms.Members(id)
	if !ok {
		return 0
	}
	return o.deliver(members, frame)
}

// SendTo delivers a frame to a single connection, if it is still live.
func (o *Orchestrator) SendTo(sid domain.SessionID, frame core.Frame) bool {
	conn, ok := o.Registry.Conn(sid)
	if !ok {
		return false
	}
	return conn.TrySend(frame) == nil
}

func (o *Orchestrator) deliver(sids []domain.SessionID, frame core.Frame) int {
	sent := 0
	for _, conn := range o.Registry.Conns(sids) {
		if err := conn.TrySend(frame); err != nil {
			log.Warn().Err(err).Str("module", "orch").Msg("dropped frame for slow consumer")
			continue
		}
		sent++
	}
	return sent
}
