package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// SlotSet is the set of slot keys one participant marked as available.
type SlotSet map[string]struct{}

func NewSlotSet(keys ...string) SlotSet {
	s := make(SlotSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s SlotSet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s SlotSet) Add(key string) {
	s[key] = struct{}{}
}

// Keys returns the members in ascending order.
func (s SlotSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s SlotSet) Clone() SlotSet {
	out := make(SlotSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s SlotSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Keys())
}

// UnmarshalJSON accepts a list of keys or the object form {"<key>": true}.
// Object entries set to false are dropped.
func (s *SlotSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	out := SlotSet{}
	switch {
	case len(data) > 0 && data[0] == '[':
		var keys []string
		if err := json.Unmarshal(data, &keys); err != nil {
			return fmt.Errorf("availability list: %w", err)
		}
		for _, k := range keys {
			out.Add(k)
		}
	case len(data) > 0 && data[0] == '{':
		var flags map[string]bool
		if err := json.Unmarshal(data, &flags); err != nil {
			return fmt.Errorf("availability object: %w", err)
		}
		for k, ok := range flags {
			if ok {
				out.Add(k)
			}
		}
	default:
		return fmt.Errorf("availability must be a list or an object, got %s", data)
	}
	*s = out
	return nil
}
