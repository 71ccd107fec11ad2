package app_test

import (
	"testing"

	"github.com/signcall/signcall/internal/app"
	"github.com/signcall/signcall/internal/domain"
)

func TestCreateReturnsShortID(t *testing.T) {
	s := app.NewRoomStore()

	id := s.Create("c1")
	if len(id) != domain.RoomIDLen {
		t.Fatalf("room id %q has length %d, want %d", id, len(id), domain.RoomIDLen)
	}
	if !s.Exists(id) {
		t.Fatalf("created room %q not in store", id)
	}

	members, ok := s.Members(id)
	if !ok {
		t.Fatalf("Members(%q) not found", id)
	}
	if len(members) != 1 || members[0] != "c1" {
		t.Fatalf("members = %v, want [c1]", members)
	}
}

func TestCreateIDsAreUnique(t *testing.T) {
	s := app.NewRoomStore()
	seen := make(map[domain.RoomID]bool)
	for i := 0; i < 100; i++ {
		id := s.Create("c1")
		if seen[id] {
			t.Fatalf("duplicate room id %q", id)
		}
		seen[id] = true
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	s := app.NewRoomStore()
	if err := s.Join("nope1234", "c1"); err != domain.ErrRoomNotFound {
		t.Fatalf("Join unknown room: err = %v, want ErrRoomNotFound", err)
	}
}

func TestJoinPreservesInsertionOrder(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	for _, sid := range []domain.SessionID{"b", "c", "d"} {
		if err := s.Join(id, sid); err != nil {
			t.Fatalf("Join(%s): %v", sid, err)
		}
	}

	members, _ := s.Members(id)
	want := []domain.SessionID{"a", "b", "c", "d"}
	if len(members) != len(want) {
		t.Fatalf("members = %v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("members[%d] = %s, want %s", i, members[i], want[i])
		}
	}
}

func TestJoinTwiceIsNoOp(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	if err := s.Join(id, "b"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := s.Join(id, "b"); err != nil {
		t.Fatalf("second join: %v", err)
	}
	members, _ := s.Members(id)
	if len(members) != 2 {
		t.Fatalf("members = %v, want exactly [a b]", members)
	}
}

func TestMembersExcept(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	_ = s.Join(id, "b")
	_ = s.Join(id, "c")

	got := s.MembersExcept(id, "b")
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("MembersExcept = %v, want [a c]", got)
	}
	if got := s.MembersExcept("nope1234", "a"); got != nil {
		t.Fatalf("MembersExcept on unknown room = %v, want nil", got)
	}
}

func TestRemoveMemberDeletesEmptyRoom(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	_ = s.Join(id, "b")

	remaining := s.RemoveMember(id, "a")
	if len(remaining) != 1 || remaining[0] != "b" {
		t.Fatalf("RemoveMember(a): remaining = %v, want [b]", remaining)
	}
	if !s.Exists(id) {
		t.Fatalf("room deleted while it still had a member")
	}
	members, _ := s.Members(id)
	if len(members) != 1 || members[0] != "b" {
		t.Fatalf("members = %v, want [b]", members)
	}

	if remaining := s.RemoveMember(id, "b"); remaining != nil {
		t.Fatalf("RemoveMember(b): remaining = %v, want nil", remaining)
	}
	if s.Exists(id) {
		t.Fatalf("empty room %q still in store", id)
	}
}

func TestRemoveMemberSnapshotIsDetached(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	_ = s.Join(id, "b")
	_ = s.Join(id, "c")

	remaining := s.RemoveMember(id, "a")
	_ = s.Join(id, "d")

	if len(remaining) != 2 || remaining[0] != "b" || remaining[1] != "c" {
		t.Fatalf("remaining = %v, want [b c] unaffected by later joins", remaining)
	}
}

func TestRemoveMemberUnknownRoom(t *testing.T) {
	s := app.NewRoomStore()
	if remaining := s.RemoveMember("nope1234", "a"); remaining != nil {
		t.Fatalf("RemoveMember on unknown room = %v, want nil", remaining)
	}
}

func TestList(t *testing.T) {
	s := app.NewRoomStore()
	id := s.Create("a")
	_ = s.Join(id, "b")
	s.Create("c")

	infos := s.List()
	if len(infos) != 2 {
		t.Fatalf("List() returned %d rooms, want 2", len(infos))
	}
	counts := make(map[domain.RoomID]int)
	for _, info := range infos {
		counts[info.ID] = info.MemberCount
	}
	if counts[id] != 2 {
		t.Fatalf("room %q member count = %d, want 2", id, counts[id])
	}
}
