package app_test

import (
	"testing"

	"github.com/signcall/signcall/internal/app"
	"github.com/signcall/signcall/internal/core"
	"github.com/signcall/signcall/internal/domain"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegisterStartsRoomless(t *testing.T) {
	r := app.NewRegistry()
	r.Register("c1", nopConn{})

	if _, ok := r.RoomOf("c1"); ok {
		t.Fatalf("fresh connection reports a room")
	}
	if _, ok := r.Conn("c1"); !ok {
		t.Fatalf("registered connection not resolvable")
	}
}

func TestSetAndClearRoom(t *testing.T) {
	r := app.NewRegistry()
	r.Register("c1", nopConn{})

	r.SetRoom("c1", "abcd1234")
	id, ok := r.RoomOf("c1")
	if !ok || id != "abcd1234" {
		t.Fatalf("RoomOf = (%q, %v), want (abcd1234, true)", id, ok)
	}

	r.ClearRoom("c1")
	if _, ok := r.RoomOf("c1"); ok {
		t.Fatalf("room association survived ClearRoom")
	}
}

func TestUnregisterRemovesEverything(t *testing.T) {
	r := app.NewRegistry()
	r.Register("c1", nopConn{})
	r.SetRoom("c1", "abcd1234")

	r.Unregister("c1")
	if _, ok := r.RoomOf("c1"); ok {
		t.Fatalf("unregistered connection still resolves a room")
	}
	if _, ok := r.Conn("c1"); ok {
		t.Fatalf("unregistered connection still resolvable")
	}
}

func TestSetRoomOnUnknownSessionIsNoOp(t *testing.T) {
	r := app.NewRegistry()
	r.SetRoom("ghost", "abcd1234")
	if _, ok := r.RoomOf("ghost"); ok {
		t.Fatalf("SetRoom created a record for an unknown session")
	}
}

func TestConnsSkipsStaleIDs(t *testing.T) {
	r := app.NewRegistry()
	r.Register("c1", nopConn{})
	r.Register("c2", nopConn{})

	conns := r.Conns([]domain.SessionID{"c1", "gone", "c2"})
	if len(conns) != 2 {
		t.Fatalf("Conns resolved %d transports, want 2", len(conns))
	}
}
