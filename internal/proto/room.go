package proto

import "encoding/json"

// Room-broadcast frames travel as {"type":...,"data":...} envelopes.

// Inbound is the envelope for room frames coming from the peer.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom   = "join_room"
	InboundTypeSendSignal = "send_signal"

	OutboundTypeUserConnected    = "user_connected"
	OutboundTypeReceiveSignal    = "receive_signal"
	OutboundTypeUserDisconnected = "user_disconnected"
)

// SendSignalData is the payload of a send_signal frame. TargetID is carried
// for the receiver's benefit only; the relay fans out to the whole room and
// receivers pick their own frames by From.
type SendSignalData struct {
	RoomID     string          `json:"roomId"`
	SignalData json.RawMessage `json:"signalData"`
	TargetID   string          `json:"targetId,omitempty"`
}

// Outbound is the envelope for room frames sent to the peer. For
// user_connected and user_disconnected, Data is the bare peer id string.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ReceiveSignalData is the payload of a receive_signal frame.
type ReceiveSignalData struct {
	Signal json.RawMessage `json:"signal"`
	From   string          `json:"from"`
}
