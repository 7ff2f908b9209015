package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/peerlink-relay/internal/core"
	"github.com/vovakirdan/peerlink-relay/internal/proto"
)

var errUnknownShape = errors.New("unrecognized frame shape")

// frameToCommand parses one raw text frame from either protocol, picking the
// protocol by the frame's leading byte: arrays belong to the
// filter-subscription vocabulary, objects to the room-broadcast one. A nil
// command with nil error means the frame was valid but calls for no action
// (unknown commands are ignored).
func frameToCommand(raw []byte) (*core.Command, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errUnknownShape
	}
	switch trimmed[0] {
	case '[':
		return relayFrameToCommand(trimmed)
	case '{':
		return roomFrameToCommand(trimmed)
	default:
		return nil, errUnknownShape
	}
}

func roomFrameToCommand(raw []byte) (*core.Command, error) {
	var inbound proto.Inbound
	if err := json.Unmarshal(raw, &inbound); err != nil {
		return nil, fmt.Errorf("decode room frame: %w", err)
	}

	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var roomID string
		if err := json.Unmarshal(inbound.Data, &roomID); err != nil {
			return nil, fmt.Errorf("decode join_room data: %w", err)
		}
		if roomID == "" {
			return nil, errors.New("join_room: empty room id")
		}
		return &core.Command{Kind: core.CommandJoinRoom, Room: roomID}, nil

	case proto.InboundTypeSendSignal:
		var data proto.SendSignalData
		if err := json.Unmarshal(inbound.Data, &data); err != nil {
			return nil, fmt.Errorf("decode send_signal data: %w", err)
		}
		if data.RoomID == "" {
			return nil, errors.New("send_signal: empty room id")
		}
		return &core.Command{
			Kind:   core.CommandSendSignal,
			Room:   data.RoomID,
			Signal: data.SignalData,
			Target: data.TargetID,
		}, nil

	default:
		// Unknown commands are ignored, not errors.
		return nil, nil
	}
}

func relayFrameToCommand(raw []byte) (*core.Command, error) {
	frame, err := proto.DecodeFrame(raw)
	if err != nil {
		return nil, err
	}

	switch frame.Verb {
	case proto.VerbEvent:
		if len(frame.Args) < 1 {
			return nil, fmt.Errorf("%w: EVENT without note", proto.ErrMalformedFrame)
		}
		var note core.Note
		if err := json.Unmarshal(frame.Args[0], &note); err != nil {
			return nil, fmt.Errorf("%w: bad note: %v", proto.ErrMalformedFrame, err)
		}
		return &core.Command{Kind: core.CommandPublish, Note: &note}, nil

	case proto.VerbReq:
		if len(frame.Args) < 2 {
			return nil, fmt.Errorf("%w: REQ needs sub id and filter", proto.ErrMalformedFrame)
		}
		var subID string
		if err := json.Unmarshal(frame.Args[0], &subID); err != nil || subID == "" {
			return nil, fmt.Errorf("%w: bad sub id", proto.ErrMalformedFrame)
		}
		var filter core.Filter
		if err := json.Unmarshal(frame.Args[1], &filter); err != nil {
			return nil, fmt.Errorf("%w: bad filter: %v", proto.ErrMalformedFrame, err)
		}
		return &core.Command{Kind: core.CommandSubscribe, SubID: subID, Filter: &filter}, nil

	case proto.VerbClose:
		if len(frame.Args) < 1 {
			return nil, fmt.Errorf("%w: CLOSE without sub id", proto.ErrMalformedFrame)
		}
		var subID string
		if err := json.Unmarshal(frame.Args[0], &subID); err != nil {
			return nil, fmt.Errorf("%w: bad sub id", proto.ErrMalformedFrame)
		}
		return &core.Command{Kind: core.CommandUnsubscribe, SubID: subID}, nil

	default:
		return nil, nil
	}
}

// eventToFrame renders an outbound event in its protocol's wire form.
func eventToFrame(ev *core.Event) any {
	switch ev.Kind {
	case core.EventPeerConnected:
		return proto.Outbound{Type: proto.OutboundTypeUserConnected, Data: ev.Peer}
	case core.EventSignal:
		return proto.Outbound{
			Type: proto.OutboundTypeReceiveSignal,
			Data: proto.ReceiveSignalData{Signal: ev.Signal, From: ev.From},
		}
	case core.EventPeerDisconnected:
		return proto.Outbound{Type: proto.OutboundTypeUserDisconnected, Data: ev.Peer}
	case core.EventOK:
		return proto.EncodeOK(ev.NoteID, ev.Accepted, ev.Reason)
	case core.EventNote:
		return proto.EncodeNote(ev.SubID, ev.Note)
	case core.EventEOSE:
		return proto.EncodeEOSE(ev.SubID)
	default:
		return nil
	}
}
