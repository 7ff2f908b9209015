package core

// Note is the structured unit routed by the filter-subscription protocol.
// Notes are transient: the relay inspects them for routing and forgets them.
type Note struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig,omitempty"`
}

// TagValues collects the value (second element) of every tag named name.
// Tags shorter than two elements carry no value and are skipped.
func (n *Note) TagValues(name string) []string {
	var values []string
	for _, tag := range n.Tags {
		if len(tag) >= 2 && tag[0] == name {
			values = append(values, tag[1])
		}
	}
	return values
}
