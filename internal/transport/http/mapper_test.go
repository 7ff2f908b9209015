package http

import (
	"encoding/json"
	"testing"

	"github.com/vovakirdan/peerlink-relay/internal/core"
	"github.com/vovakirdan/peerlink-relay/internal/proto"
)

func TestFrameToCommandJoinRoom(t *testing.T) {
	cmd, err := frameToCommand([]byte(`{"type":"join_room","data":"r1"}`))
	if err != nil {
		t.Fatalf("map join_room: %v", err)
	}
	if cmd.Kind != core.CommandJoinRoom || cmd.Room != "r1" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestFrameToCommandSendSignal(t *testing.T) {
	raw := `{"type":"send_signal","data":{"roomId":"r1","signalData":{"sdp":"x"},"targetId":"peer-2"}}`
	cmd, err := frameToCommand([]byte(raw))
	if err != nil {
		t.Fatalf("map send_signal: %v", err)
	}
	if cmd.Kind != core.CommandSendSignal || cmd.Room != "r1" || cmd.Target != "peer-2" {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	if string(cmd.Signal) != `{"sdp":"x"}` {
		t.Fatalf("unexpected signal payload: %s", cmd.Signal)
	}
}

func TestFrameToCommandRelayVerbs(t *testing.T) {
	cmd, err := frameToCommand([]byte(`["EVENT",{"id":"e1","kind":1,"pubkey":"A"}]`))
	if err != nil {
		t.Fatalf("map EVENT: %v", err)
	}
	if cmd.Kind != core.CommandPublish || cmd.Note.ID != "e1" || cmd.Note.Kind != 1 {
		t.Fatalf("unexpected publish command: %+v", cmd)
	}

	cmd, err = frameToCommand([]byte(`["REQ","s1",{"kinds":[1],"#p":["B"]}]`))
	if err != nil {
		t.Fatalf("map REQ: %v", err)
	}
	if cmd.Kind != core.CommandSubscribe || cmd.SubID != "s1" {
		t.Fatalf("unexpected subscribe command: %+v", cmd)
	}
	if got := cmd.Filter.Tags["p"]; len(got) != 1 || got[0] != "B" {
		t.Fatalf("unexpected filter tags: %v", cmd.Filter.Tags)
	}

	cmd, err = frameToCommand([]byte(`["CLOSE","s1"]`))
	if err != nil {
		t.Fatalf("map CLOSE: %v", err)
	}
	if cmd.Kind != core.CommandUnsubscribe || cmd.SubID != "s1" {
		t.Fatalf("unexpected unsubscribe command: %+v", cmd)
	}
}

func TestFrameToCommandIgnoresUnknown(t *testing.T) {
	for _, raw := range []string{
		`{"type":"made_up_command","data":{}}`,
		`["AUTH","challenge"]`,
	} {
		cmd, err := frameToCommand([]byte(raw))
		if err != nil {
			t.Fatalf("unknown commands must not error: %v", err)
		}
		if cmd != nil {
			t.Fatalf("unknown command produced %+v", cmd)
		}
	}
}

func TestFrameToCommandMalformed(t *testing.T) {
	for _, raw := range []string{
		``,
		`garbage`,
		`{"type":"join_room","data":42}`,
		`{"type":"send_signal","data":"not an object"}`,
		`["EVENT"]`,
		`["REQ","s1"]`,
		`["CLOSE"]`,
	} {
		if _, err := frameToCommand([]byte(raw)); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestEventToFrameShapes(t *testing.T) {
	frame := eventToFrame(&core.Event{Kind: core.EventPeerConnected, Room: "r1", Peer: "c2"})
	out, ok := frame.(proto.Outbound)
	if !ok || out.Type != proto.OutboundTypeUserConnected || out.Data != "c2" {
		t.Fatalf("unexpected user_connected frame: %+v", frame)
	}

	frame = eventToFrame(&core.Event{Kind: core.EventOK, NoteID: "e1", Accepted: true, Reason: "saved"})
	raw, err := json.Marshal(frame)
	if err != nil {
		t.Fatalf("marshal OK frame: %v", err)
	}
	if string(raw) != `["OK","e1",true,"saved"]` {
		t.Fatalf("unexpected OK frame: %s", raw)
	}
}
