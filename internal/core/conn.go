package core

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultEventBuffer is the outbound channel capacity used when the caller
// passes a non-positive buffer size.
const DefaultEventBuffer = 16

// Conn is a live transport session as seen by the core layer. The transport
// feeds Commands and drains Events; the router owns everything else.
type Conn struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	closeOnce sync.Once

	// subs is touched only by the router goroutine.
	subs map[string]Filter
}

// NewConn constructs a connection with initialized channels. An empty id
// gets a freshly generated one.
func NewConn(id string, eventBuffer int) *Conn {
	if id == "" {
		id = uuid.NewString()
	}
	if eventBuffer <= 0 {
		eventBuffer = DefaultEventBuffer
	}
	return &Conn{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, eventBuffer),
		subs:     make(map[string]Filter),
	}
}

// Close marks the end of the inbound stream. Safe to call more than once;
// the router observes it and runs the disconnect cascade.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.Commands)
	})
}

// send enqueues ev without blocking. Returns false when the outbound buffer
// is full and the event was dropped.
func (c *Conn) send(ev *Event) bool {
	select {
	case c.Events <- ev:
		return true
	default:
		return false
	}
}
