package tourapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one raw object from the upstream envelope. Numbers are kept as
// json.Number so fields are re-encoded exactly as received.
type Item map[string]any

// String renders the field at key as text; absent or null yields "".
func (it Item) String(key string) string {
	switch v := it[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether key is present, even with an empty value.
func (it Item) Has(key string) bool {
	_, ok := it[key]
	return ok
}

// Clone returns a shallow copy.
func (it Item) Clone() Item {
	out := make(Item, len(it)+4)
	for k, v := range it {
		out[k] = v
	}
	return out
}

type envelope struct {
	Response struct {
		Header map[string]any `json:"header"`
		Body   struct {
			Items json.RawMessage `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// ParseItems extracts response.body.items.item from body as an ordered
// sequence. A missing or empty item field yields an empty sequence, a single
// object yields one element and an array is returned in order. ok is false
// when body is not a JSON envelope at all; the sequence is then empty.
func ParseItems(body []byte) (items []Item, ok bool) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []Item{}, false
	}

	raw := bytes.TrimSpace(env.Response.Body.Items)
	if len(raw) == 0 || raw[0] != '{' {
		// the upstream sends "items": "" for an empty page
		return []Item{}, true
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return []Item{}, false
	}

	return normalize(wrapper.Item), true
}

func normalize(raw json.RawMessage) []Item {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []Item{}
	}

	switch raw[0] {
	case '{':
		if it, ok := decodeObject(raw); ok {
			return []Item{it}
		}
	case '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return []Item{}
		}
		out := make([]Item, 0, len(elems))
		for _, el := range elems {
			if it, ok := decodeObject(el); ok {
				out = append(out, it)
			}
		}
		return out
	}
	return []Item{}
}

func decodeObject(raw json.RawMessage) (Item, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var it Item
	if err := dec.Decode(&it); err != nil || it == nil {
		return nil, false
	}
	return it, true
}
