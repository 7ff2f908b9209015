package core

import "encoding/json"

// CommandKind describes what the peer wants the router to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the connection to a room and announces it.
	CommandJoinRoom CommandKind = iota
	// CommandSendSignal relays an opaque signaling payload to a room.
	CommandSendSignal
	// CommandPublish fans a note out to matching subscriptions.
	CommandPublish
	// CommandSubscribe installs or replaces a note filter.
	CommandSubscribe
	// CommandUnsubscribe removes a note filter.
	CommandUnsubscribe
)

// Command is a parsed inbound frame. Which fields are set depends on Kind.
type Command struct {
	Kind CommandKind

	// Room protocol.
	Room   string
	Signal json.RawMessage
	// Target is carried on signal frames but does not narrow delivery;
	// receivers filter on the From field themselves.
	Target string

	// Subscription protocol.
	Note   *Note
	SubID  string
	Filter *Filter
}
