package domain

import (
	"encoding/json"
	"sort"
)

// Registration is one intake submission plus the identity and timestamp
// the store assigned to it. Over the wire and in the collection file it
// is a flat object: the submitted fields sit next to id and
// registrationDate, not under a nested key.
type Registration struct {
	ID               int
	RegistrationDate string
	Fields           map[string]string
}

// Field returns the submitted value for key, or "" when absent.
func (r Registration) Field(key string) string {
	return r.Fields[key]
}

// FieldKeys returns the submitted attribute names in sorted order.
func (r Registration) FieldKeys() []string {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Registration) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+2)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat["id"] = r.ID
	flat["registrationDate"] = r.RegistrationDate
	return json.Marshal(flat)
}

func (r *Registration) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	r.Fields = make(map[string]string, len(flat))
	for k, v := range flat {
		switch k {
		case "id":
			if err := json.Unmarshal(v, &r.ID); err != nil {
				return err
			}
		case "registrationDate":
			if err := json.Unmarshal(v, &r.RegistrationDate); err != nil {
				return err
			}
		default:
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				// non-string submissions are kept as their raw text
				s = string(v)
			}
			r.Fields[k] = s
		}
	}
	return nil
}

// Collection is the full ordered set of registrations. Insertion order
// is arrival order is persisted order; the collection is append-only.
type Collection []Registration

// FieldKeys returns the union of submitted attribute names across the
// whole collection, sorted.
func (c Collection) FieldKeys() []string {
	seen := map[string]struct{}{}
	for _, r := range c {
		for k := range r.Fields {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
