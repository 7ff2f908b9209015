package core

import "encoding/json"

// EventKind is a notification the router emits to connections.
type EventKind int

const (
	// EventPeerConnected tells room members a new peer joined.
	EventPeerConnected EventKind = iota
	// EventSignal delivers a relayed signaling payload to room members.
	EventSignal
	// EventPeerDisconnected tells room members a peer's transport closed.
	EventPeerDisconnected
	// EventOK acknowledges a published note to its sender.
	EventOK
	// EventNote delivers a note that matched one of the connection's filters.
	EventNote
	// EventEOSE tells a subscriber there is no stored backlog to replay.
	EventEOSE
)

// Event is sent to connections to describe what happened in the relay.
type Event struct {
	Kind EventKind

	// Room protocol.
	Room   string
	Peer   string
	From   string
	Signal json.RawMessage

	// Subscription protocol.
	SubID    string
	Note     *Note
	NoteID   string
	Accepted bool
	Reason   string
}
