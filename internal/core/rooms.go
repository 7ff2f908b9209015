package core

// Rooms indexes ad-hoc named groups both ways: room id to members and
// connection id to joined rooms. The reverse index makes room-scoped
// disconnect notices cheap. Router-goroutine only, like Registry.
type Rooms struct {
	byRoom map[string]map[string]*Conn
	byConn map[string]map[string]struct{}
}

// NewRooms constructs an empty room index.
func NewRooms() *Rooms {
	return &Rooms{
		byRoom: make(map[string]map[string]*Conn),
		byConn: make(map[string]map[string]struct{}),
	}
}

// Join adds c to roomID, creating the room on first join. Idempotent.
// Returns true if the connection was newly added.
func (r *Rooms) Join(roomID string, c *Conn) bool {
	members, ok := r.byRoom[roomID]
	if !ok {
		members = make(map[string]*Conn)
		r.byRoom[roomID] = members
	}
	if _, exists := members[c.ID]; exists {
		return false
	}
	members[c.ID] = c

	joined, ok := r.byConn[c.ID]
	if !ok {
		joined = make(map[string]struct{})
		r.byConn[c.ID] = joined
	}
	joined[roomID] = struct{}{}
	return true
}

// MembersOf returns a snapshot of the members of roomID, minus excludingID.
// An unknown room yields an empty slice.
func (r *Rooms) MembersOf(roomID, excludingID string) []*Conn {
	members := r.byRoom[roomID]
	out := make([]*Conn, 0, len(members))
	for id, c := range members {
		if id == excludingID {
			continue
		}
		out = append(out, c)
	}
	return out
}

// RoomsOf returns the ids of every room connID has joined.
func (r *Rooms) RoomsOf(connID string) []string {
	joined := r.byConn[connID]
	out := make([]string, 0, len(joined))
	for roomID := range joined {
		out = append(out, roomID)
	}
	return out
}

// LeaveAll removes connID from every room it joined, deleting rooms whose
// member set becomes empty. Idempotent.
func (r *Rooms) LeaveAll(connID string) {
	for roomID := range r.byConn[connID] {
		members := r.byRoom[roomID]
		delete(members, connID)
		if len(members) == 0 {
			delete(r.byRoom, roomID)
		}
	}
	delete(r.byConn, connID)
}

// Len returns the number of rooms with at least one member.
func (r *Rooms) Len() int {
	return len(r.byRoom)
}
