package proto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeFrame(t *testing.T) {
	frame, err := DecodeFrame([]byte(`["REQ","s1",{"kinds":[1]}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if frame.Verb != VerbReq || len(frame.Args) != 2 {
		t.Fatalf("unexpected frame: %+v", frame)
	}

	var subID string
	if err := json.Unmarshal(frame.Args[0], &subID); err != nil || subID != "s1" {
		t.Fatalf("unexpected sub id: %q (%v)", subID, err)
	}
}

func TestDecodeFrameMalformed(t *testing.T) {
	for _, raw := range []string{
		`{"type":"not-an-array"}`,
		`[]`,
		`[42,"args"]`,
		`not json at all`,
	} {
		if _, err := DecodeFrame([]byte(raw)); !errors.Is(err, ErrMalformedFrame) {
			t.Fatalf("expected ErrMalformedFrame for %q, got %v", raw, err)
		}
	}
}

func TestEncodeOKShape(t *testing.T) {
	raw, err := json.Marshal(EncodeOK("e1", true, "saved"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `["OK","e1",true,"saved"]` {
		t.Fatalf("unexpected OK frame: %s", raw)
	}
}

func TestEncodeEOSEShape(t *testing.T) {
	raw, err := json.Marshal(EncodeEOSE("s1"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `["EOSE","s1"]` {
		t.Fatalf("unexpected EOSE frame: %s", raw)
	}
}
