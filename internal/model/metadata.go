package model

import (
	"encoding/json"
	"sort"
	"strings"
)

// Metadata is the free-form key/value map stored as JSON text on products,
// contents and file uploads.
type Metadata map[string]string

// ParseMetadata decodes the JSON text of a metadata column.  Empty or
// malformed text yields an empty map rather than an error: the column is
// opaque and older rows may hold anything.
func ParseMetadata(raw string) Metadata {
	m := Metadata{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Metadata{}
	}
	return m
}

// DecodeMetadata decodes metadata supplied by a client.  Unlike
// ParseMetadata it reports text that is not a JSON object of strings.
func DecodeMetadata(raw string) (Metadata, error) {
	m := Metadata{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = Metadata{}
	}
	return m, nil
}

// Encode returns the JSON text persisted for m.  An empty map encodes to "".
func (m Metadata) Encode() string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

// Keys returns the metadata keys in lexical order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
