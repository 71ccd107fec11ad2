package signal

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/signcall/signcall/internal/detect"
	"github.com/signcall/signcall/internal/domain"
)

type detectionError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// handleDetect bridges detect_sign to the classifier collaborator. The
// pipeline runs on its own goroutine with no store lock held, so a slow
// classification cannot stall signaling in unrelated rooms. Results fan
// out to the whole room, sender included; every failure goes to the
// requester alone.
func (ctl *SignalWSController) handleDetect(ctx context.Context, sid domain.SessionID, conn *WsSignalConn, data []byte) {
	var p struct {
		RoomID string `json:"roomId"`
		Image  string `json:"image"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad detect payload")
		ctl.sendJSON(conn, detectionError{"detection_error", "bad payload"})
		return
	}

	if ctl.Limiter != nil && !ctl.Limiter.Allow(sid) {
		ctl.sendJSON(conn, detectionError{"detection_error", "too many requests"})
		return
	}

	go func() {
		res, err := ctl.Detector.Detect(ctx, p.Image)
		if err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("detection failed")
			ctl.sendJSON(conn, detectionError{"detection_error", detectErrorMessage(err)})
			return
		}

		frame, ok := marshalFrame(struct {
			Type       string  `json:"type"`
			Label      string  `json:"label"`
			Confidence float64 `json:"confidence"`
		}{"detection_result", res.Label, res.Confidence})
		if !ok {
			return
		}

		roomID := domain.RoomID(p.RoomID)
		if roomID != "" && ctl.Orch.Rooms.Exists(roomID) {
			ctl.Orch.BroadcastRoom(roomID, frame)
			return
		}
		_ = conn.TrySend(frame)
	}()
}

func detectErrorMessage(err error) string {
	switch {
	case errors.Is(err, detect.ErrUnavailable):
		return "classifier not loaded"
	case errors.Is(err, detect.ErrNoImage):
		return "no image data received"
	case errors.Is(err, detect.ErrDecode):
		return "image decode failed"
	case errors.Is(err, detect.ErrClassOutOfRange):
		return "invalid prediction"
	default:
		return "detection failed"
	}
}
