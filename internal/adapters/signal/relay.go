package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/domain"
)

// relayEnvelope carries a negotiation payload. The payload itself is
// opaque pass-through: the relay never parses SDP or candidate structure,
// it forwards the raw bytes.
type relayEnvelope struct {
	RoomID    string          `json:"roomId"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

func (e *relayEnvelope) payload(event string) json.RawMessage {
	switch event {
	case "offer":
		return e.Offer
	case "answer":
		return e.Answer
	default:
		return e.Candidate
	}
}

// handleRelay forwards offer/answer/ice_candidate to every room member
// except the sender. An unknown room means nobody to deliver to; the
// message is dropped without an error event, same as a peer racing a
// disconnect.
func (ctl *SignalWSController) handleRelay(sid domain.SessionID, event string, data []byte) {
	var env relayEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", event).Msg("bad relay payload")
		return
	}

	key := event
	if event == "ice_candidate" {
		key = "candidate"
	}
	frame, ok := marshalFrame(map[string]any{
		"type": event,
		key:    env.payload(event),
	})
	if !ok {
		return
	}

	sent := ctl.Orch.Relay(sid, domain.RoomID(env.RoomID), frame)
	log.Debug().Str("module", "signal").Str("event", event).Str("room", env.RoomID).Int("sent", sent).Msg("relayed")
}
