package core

import "github.com/signcall/signcall/internal/domain"

// Frame is a marshaled outbound event, written to the socket as-is.
type Frame []byte

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"memberCount"`
}

// RoomStore owns room records and exposes only atomic operations.
// It never touches transport resources and no call blocks.
type RoomStore interface {
	Create(creator domain.SessionID) domain.RoomID
	Join(id domain.RoomID, sid domain.SessionID) error
	RemoveMember(id domain.RoomID, sid domain.SessionID) (remaining []domain.SessionID)
	Exists(id domain.RoomID) bool
	Members(id domain.RoomID) ([]domain.SessionID, bool)
	MembersExcept(id domain.RoomID, except domain.SessionID) []domain.SessionID
	List() []RoomInfo
}

// Registry owns connection records: the transport endpoint plus the room
// the connection currently belongs to, if any.
type Registry interface {
	Register(sid domain.SessionID, conn SignalConnection)
	Unregister(sid domain.SessionID)
	RoomOf(sid domain.SessionID) (domain.RoomID, bool)
	SetRoom(sid domain.SessionID, id domain.RoomID)
	ClearRoom(sid domain.SessionID)
	Conn(sid domain.SessionID) (SignalConnection, bool)
	Conns(sids []domain.SessionID) []SignalConnection
}
