package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Stats is a point-in-time snapshot of router state.
type Stats struct {
	Connections   int `json:"connections"`
	Rooms         int `json:"rooms"`
	Subscriptions int `json:"subscriptions"`
}

type inboundKind int

const (
	inboundRegister inboundKind = iota
	inboundCommand
	inboundDisconnect
	inboundStats
)

type inbound struct {
	kind  inboundKind
	conn  *Conn
	cmd   *Command
	stats chan Stats
}

// Router owns the registry and room index and performs all fan-out. Every
// mutation and routing decision happens on the single goroutine running Run,
// so the maps need no locking. Commands from one connection are applied in
// the order the connection sent them.
type Router struct {
	registry *Registry
	rooms    *Rooms
	inbox    chan inbound
	log      *zerolog.Logger
}

// NewRouter constructs a router. The logger may not be nil.
func NewRouter(logger *zerolog.Logger) *Router {
	return &Router{
		registry: NewRegistry(),
		rooms:    NewRooms(),
		inbox:    make(chan inbound, 64),
		log:      logger,
	}
}

// Run processes inbound traffic until ctx is cancelled.
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case in := <-r.inbox:
			r.dispatch(in)
		case <-ctx.Done():
			return
		}
	}
}

// Register admits c and starts pumping its commands into the router. When
// the connection's command stream closes, the disconnect cascade runs after
// every command already sent has been applied.
func (r *Router) Register(c *Conn) {
	r.inbox <- inbound{kind: inboundRegister, conn: c}
	go func() {
		for cmd := range c.Commands {
			r.inbox <- inbound{kind: inboundCommand, conn: c, cmd: cmd}
		}
		r.inbox <- inbound{kind: inboundDisconnect, conn: c}
	}()
}

// Unregister closes the connection's command stream, triggering cleanup.
// Idempotent.
func (r *Router) Unregister(c *Conn) {
	c.Close()
}

// Snapshot reports live counts. It round-trips through the router goroutine,
// so the numbers are consistent with each other.
func (r *Router) Snapshot(ctx context.Context) (Stats, error) {
	reply := make(chan Stats, 1)
	select {
	case r.inbox <- inbound{kind: inboundStats, stats: reply}:
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

func (r *Router) dispatch(in inbound) {
	switch in.kind {
	case inboundRegister:
		r.registry.Add(in.conn)
		r.log.Info().Str("conn_id", in.conn.ID).Msg("connection registered")
	case inboundDisconnect:
		r.handleDisconnect(in.conn)
	case inboundCommand:
		r.handleCommand(in.conn, in.cmd)
	case inboundStats:
		in.stats <- Stats{
			Connections:   r.registry.Len(),
			Rooms:         r.rooms.Len(),
			Subscriptions: r.registry.SubscriptionCount(),
		}
	}
}

func (r *Router) handleCommand(c *Conn, cmd *Command) {
	if !r.registry.Has(c.ID) {
		// Inbound raced the disconnect cascade; the connection is gone.
		r.log.Debug().Str("conn_id", c.ID).Msg("dropping command from closed connection")
		return
	}

	switch cmd.Kind {
	case CommandJoinRoom:
		r.handleJoin(c, cmd.Room)
	case CommandSendSignal:
		r.handleSignal(c, cmd)
	case CommandPublish:
		r.handlePublish(c, cmd.Note)
	case CommandSubscribe:
		r.handleSubscribe(c, cmd.SubID, cmd.Filter)
	case CommandUnsubscribe:
		r.registry.DropSubscription(c.ID, cmd.SubID)
	}
}

// handleJoin adds the connection to the room and announces it to everyone
// already there. The joiner hears nothing about its own join.
func (r *Router) handleJoin(c *Conn, roomID string) {
	if roomID == "" {
		return
	}
	r.rooms.Join(roomID, c)
	r.log.Debug().Str("conn_id", c.ID).Str("room", roomID).Msg("joined room")

	for _, member := range r.rooms.MembersOf(roomID, c.ID) {
		r.deliver(member, &Event{
			Kind: EventPeerConnected,
			Room: roomID,
			Peer: c.ID,
		})
	}
}

// handleSignal relays the payload to every other member of the room. The
// frame's target id intentionally does not narrow delivery; receivers
// self-filter on From.
func (r *Router) handleSignal(c *Conn, cmd *Command) {
	for _, member := range r.rooms.MembersOf(cmd.Room, c.ID) {
		r.deliver(member, &Event{
			Kind:   EventSignal,
			Room:   cmd.Room,
			From:   c.ID,
			Signal: cmd.Signal,
		})
	}
}

// handlePublish acknowledges the note to its sender, then delivers it once
// per matching subscription on every other live connection.
func (r *Router) handlePublish(c *Conn, note *Note) {
	if note == nil {
		return
	}
	r.deliver(c, &Event{
		Kind:     EventOK,
		NoteID:   note.ID,
		Accepted: true,
		Reason:   "saved",
	})

	for _, other := range r.registry.ForEachOther(c.ID) {
		for subID, filter := range r.registry.SubscriptionsOf(other.ID) {
			if filter.Matches(note) {
				r.deliver(other, &Event{
					Kind:  EventNote,
					SubID: subID,
					Note:  note,
				})
			}
		}
	}
}

// handleSubscribe installs the filter (replacing any prior one under the
// same id) and immediately signals end-of-stored-results: the relay keeps
// no backlog, so there is never anything to replay.
func (r *Router) handleSubscribe(c *Conn, subID string, filter *Filter) {
	if subID == "" {
		return
	}
	f := Filter{}
	if filter != nil {
		f = *filter
	}
	r.registry.SetSubscription(c.ID, subID, f)
	r.deliver(c, &Event{Kind: EventEOSE, SubID: subID})
}

// handleDisconnect runs the full cleanup cascade, then notifies only the
// peers that shared at least one room with the leaver, once each.
func (r *Router) handleDisconnect(c *Conn) {
	if !r.registry.Has(c.ID) {
		return
	}

	notify := make(map[string]*Conn)
	for _, roomID := range r.rooms.RoomsOf(c.ID) {
		for _, member := range r.rooms.MembersOf(roomID, c.ID) {
			notify[member.ID] = member
		}
	}

	r.rooms.LeaveAll(c.ID)
	r.registry.Remove(c.ID)
	close(c.Events)
	r.log.Info().Str("conn_id", c.ID).Msg("connection unregistered")

	for _, member := range notify {
		r.deliver(member, &Event{
			Kind: EventPeerDisconnected,
			Peer: c.ID,
		})
	}
}

// deliver is fire-and-forget: a full outbound buffer drops the event rather
// than stalling the rest of the fan-out.
func (r *Router) deliver(c *Conn, ev *Event) {
	if !c.send(ev) {
		r.log.Warn().Str("conn_id", c.ID).Int("event_kind", int(ev.Kind)).Msg("slow consumer, event dropped")
	}
}
