package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Filter-subscription frames travel as tagged JSON arrays: the first element
// names the verb, the rest are its arguments.

const (
	VerbEvent = "EVENT"
	VerbReq   = "REQ"
	VerbClose = "CLOSE"
	VerbOK    = "OK"
	VerbEOSE  = "EOSE"
)

// ErrMalformedFrame marks input that is not a well-formed array frame.
// Such frames are dropped; the connection stays open.
var ErrMalformedFrame = errors.New("malformed relay frame")

// Frame is a decoded array frame: a verb and its raw arguments.
type Frame struct {
	Verb string
	Args []json.RawMessage
}

// DecodeFrame splits raw into verb and arguments. It validates shape only;
// argument decoding is the caller's job.
func DecodeFrame(raw []byte) (*Frame, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(elems) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrMalformedFrame)
	}
	var verb string
	if err := json.Unmarshal(elems[0], &verb); err != nil {
		return nil, fmt.Errorf("%w: non-string verb", ErrMalformedFrame)
	}
	return &Frame{Verb: verb, Args: elems[1:]}, nil
}

// EncodeOK builds an ["OK", id, accepted, reason] frame value.
func EncodeOK(noteID string, accepted bool, reason string) []any {
	return []any{VerbOK, noteID, accepted, reason}
}

// EncodeNote builds an ["EVENT", subId, note] frame value.
func EncodeNote(subID string, note any) []any {
	return []any{VerbEvent, subID, note}
}

// EncodeEOSE builds an ["EOSE", subId] frame value.
func EncodeEOSE(subID string) []any {
	return []any{VerbEOSE, subID}
}
