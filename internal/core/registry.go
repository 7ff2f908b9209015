package core

// Registry tracks every live connection together with the subscriptions it
// owns. It is not safe for concurrent use; the router goroutine is its only
// caller.
type Registry struct {
	conns map[string]*Conn
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

// Add admits c. Re-adding the same id overwrites, which cannot happen with
// generated ids.
func (r *Registry) Add(c *Conn) {
	r.conns[c.ID] = c
}

// Remove forgets the connection and every subscription it owned. Idempotent:
// removing an unknown id returns nil.
func (r *Registry) Remove(id string) *Conn {
	c, ok := r.conns[id]
	if !ok {
		return nil
	}
	delete(r.conns, id)
	c.subs = make(map[string]Filter)
	return c
}

// Has reports whether id is a live connection.
func (r *Registry) Has(id string) bool {
	_, ok := r.conns[id]
	return ok
}

// ForEachOther returns a snapshot of every live connection except excludeID.
// The snapshot stays valid while callers mutate the registry.
func (r *Registry) ForEachOther(excludeID string) []*Conn {
	others := make([]*Conn, 0, len(r.conns))
	for id, c := range r.conns {
		if id == excludeID {
			continue
		}
		others = append(others, c)
	}
	return others
}

// SubscriptionsOf returns the subscription map owned by id. Unknown ids get
// an empty map rather than an error.
func (r *Registry) SubscriptionsOf(id string) map[string]Filter {
	c, ok := r.conns[id]
	if !ok {
		return map[string]Filter{}
	}
	return c.subs
}

// SetSubscription installs or replaces the filter registered under subID for
// the given connection. Last write wins.
func (r *Registry) SetSubscription(id, subID string, f Filter) {
	c, ok := r.conns[id]
	if !ok {
		return
	}
	c.subs[subID] = f
}

// DropSubscription removes subID from the connection. Unknown connection or
// subscription ids are no-ops.
func (r *Registry) DropSubscription(id, subID string) {
	if c, ok := r.conns[id]; ok {
		delete(c.subs, subID)
	}
}

// Len returns the number of live connections.
func (r *Registry) Len() int {
	return len(r.conns)
}

// SubscriptionCount returns the total number of live subscriptions.
func (r *Registry) SubscriptionCount() int {
	total := 0
	for _, c := range r.conns {
		total += len(c.subs)
	}
	return total
}
