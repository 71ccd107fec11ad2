package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/app/orch"
	"github.com/signcall/signcall/internal/domain"
)

func (ctl *SignalWSController) handleCreateRoom(sid domain.SessionID, conn *WsSignalConn) {
	id, dep := ctl.Orch.CreateRoom(sid)
	ctl.notifyDeparture(dep)

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(id)).Msg("room created")
	ctl.sendJSON(conn, struct {
		Type   string        `json:"type"`
		RoomID domain.RoomID `json:"roomId"`
	}{"room_created", id})
}

func (ctl *SignalWSController) handleJoinRoom(sid domain.SessionID, conn *WsSignalConn, data []byte) {
	var p struct {
		RoomID string `json:"roomId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendJSON(conn, errorEvent{"error", "bad payload"})
		return
	}

	dep, err := ctl.Orch.Join(sid, domain.RoomID(p.RoomID))
	ctl.notifyDeparture(dep)
	if err != nil {
		if !errors.Is(err, domain.ErrRoomNotFound) {
			log.Error().Err(err).Str("module", "signal").Str("room", p.RoomID).Msg("join failed")
		}
		ctl.sendJSON(conn, errorEvent{"error", "Room not found"})
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("joined room")
	ctl.sendJSON(conn, struct {
		Type   string `json:"type"`
		RoomID string `json:"roomId"`
	}{"room_joined", p.RoomID})
}

func (ctl *SignalWSController) onDisconnect(sid domain.SessionID) {
	if ctl.Limiter != nil {
		ctl.Limiter.Forget(sid)
	}
	ctl.notifyDeparture(ctl.Orch.Disconnect(sid))
}

// notifyDeparture tells the members still in a room that a peer is gone.
func (ctl *SignalWSController) notifyDeparture(dep *orch.Departure) {
	if dep == nil || len(dep.Remaining) == 0 {
		return
	}
	frame, ok := marshalFrame(struct {
		Type string `json:"type"`
	}{"peer_disconnected"})
	if !ok {
		return
	}
	for _, conn := range ctl.Orch.Registry.Conns(dep.Remaining) {
		_ = conn.TrySend(frame)
	}
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
