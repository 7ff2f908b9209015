package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Filter selects notes for a subscription. Every present dimension must
// match (logical AND); within one dimension any listed value suffices.
// A zero Filter matches every note.
type Filter struct {
	Kinds   []int
	Authors []string
	// Tags maps a tag name (without the "#" wire prefix) to acceptable values.
	Tags map[string][]string
}

// Matches reports whether n satisfies every predicate present in f.
// It is a pure function of its arguments.
func (f *Filter) Matches(n *Note) bool {
	if n == nil {
		return false
	}
	if len(f.Kinds) > 0 && !containsInt(f.Kinds, n.Kind) {
		return false
	}
	if len(f.Authors) > 0 && !containsString(f.Authors, n.PubKey) {
		return false
	}
	for name, accepted := range f.Tags {
		if !intersects(n.TagValues(name), accepted) {
			return false
		}
	}
	return true
}

// UnmarshalJSON decodes the wire form, where tag predicates appear as
// "#"-prefixed keys (e.g. {"kinds":[1],"#p":["abc"]}). Unknown keys impose
// no constraint and are dropped.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode filter: %w", err)
	}

	*f = Filter{}
	for key, value := range raw {
		switch {
		case key == "kinds":
			if err := json.Unmarshal(value, &f.Kinds); err != nil {
				return fmt.Errorf("decode filter kinds: %w", err)
			}
		case key == "authors":
			if err := json.Unmarshal(value, &f.Authors); err != nil {
				return fmt.Errorf("decode filter authors: %w", err)
			}
		case strings.HasPrefix(key, "#") && len(key) > 1:
			var values []string
			if err := json.Unmarshal(value, &values); err != nil {
				return fmt.Errorf("decode filter tag %s: %w", key, err)
			}
			if f.Tags == nil {
				f.Tags = make(map[string][]string)
			}
			f.Tags[key[1:]] = values
		}
	}
	return nil
}

// MarshalJSON produces the wire form consumed by UnmarshalJSON.
func (f Filter) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, 2+len(f.Tags))
	if len(f.Kinds) > 0 {
		raw["kinds"] = f.Kinds
	}
	if len(f.Authors) > 0 {
		raw["authors"] = f.Authors
	}
	for name, values := range f.Tags {
		raw["#"+name] = values
	}
	return json.Marshal(raw)
}

func containsInt(set []int, v int) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, candidate := range set {
		if candidate == v {
			return true
		}
	}
	return false
}

func intersects(values, accepted []string) bool {
	for _, v := range values {
		if containsString(accepted, v) {
			return true
		}
	}
	return false
}
