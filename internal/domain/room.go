// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

// RoomIDLen is the length of generated room identifiers.
const RoomIDLen = 8

var ErrRoomNotFound = errors.New("room not found")

type (
	// SessionID identifies one signaling connection. Assigned at connect
	// time, opaque to the client.
	SessionID string

	RoomID string
)

// Room is one ephemeral call session. Members keeps join order and holds
// no duplicates; the creator is the first member.
type Room struct {
	ID      RoomID
	Creator SessionID
	Members []SessionID
}
