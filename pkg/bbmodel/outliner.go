package bbmodel

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// OutlinerKind classifies an outliner entry.
type OutlinerKind int

const (
	OutlinerUnknown   OutlinerKind = iota // Anything else
	OutlinerReference                     // Element identifier string
	OutlinerGroup                         // Nested bone object
)

// String returns a human-readable kind name.
func (k OutlinerKind) String() string {
	switch k {
	case OutlinerReference:
		return "reference"
	case OutlinerGroup:
		return "group"
	default:
		return "unknown"
	}
}

// OutlinerEntry is one raw entry of an outliner array. Entries are either an
// element identifier or a nested bone, so decoding is deferred until the kind
// is known.
type OutlinerEntry struct {
	raw json.RawMessage
}

// Group is a bone in the outliner tree.
type Group struct {
	UUID     *string         `json:"uuid"`
	Name     *string         `json:"name"`
	Origin   []float32       `json:"origin"`
	Children []OutlinerEntry `json:"children"`
}

// NewReferenceEntry builds an entry that refers to an element.
func NewReferenceEntry(id string) OutlinerEntry {
	raw, _ := json.Marshal(id)
	return OutlinerEntry{raw: raw}
}

// UnmarshalJSON keeps the raw entry.
func (e *OutlinerEntry) UnmarshalJSON(data []byte) error {
	e.raw = append(e.raw[:0], data...)
	return nil
}

// MarshalJSON writes the raw entry back out.
func (e OutlinerEntry) MarshalJSON() ([]byte, error) {
	if len(e.raw) == 0 {
		return []byte("null"), nil
	}
	return e.raw, nil
}

// Kind reports the shape of the entry.
func (e OutlinerEntry) Kind() OutlinerKind {
	trimmed := bytes.TrimSpace(e.raw)
	if len(trimmed) == 0 {
		return OutlinerUnknown
	}
	switch trimmed[0] {
	case '"':
		return OutlinerReference
	case '{':
		return OutlinerGroup
	default:
		return OutlinerUnknown
	}
}

// Raw returns the undecoded entry.
func (e OutlinerEntry) Raw() []byte {
	return e.raw
}

// Reference decodes an element identifier entry.
func (e OutlinerEntry) Reference() (string, error) {
	if e.Kind() != OutlinerReference {
		return "", errors.Errorf("outliner entry is a %s, not a reference", e.Kind())
	}
	var id string
	if err := json.Unmarshal(e.raw, &id); err != nil {
		return "", errors.Wrap(err, "decoding outliner reference")
	}
	return id, nil
}

// Group decodes a nested bone entry and checks its required fields.
func (e OutlinerEntry) Group() (*Group, error) {
	if e.Kind() != OutlinerGroup {
		return nil, errors.Errorf("outliner entry is a %s, not a group", e.Kind())
	}
	var g Group
	if err := json.Unmarshal(e.raw, &g); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "decoding outliner group: %v", err)
	}
	if g.UUID == nil {
		return nil, missing("uuid")
	}
	if g.Name == nil {
		return nil, missing("name")
	}
	if len(g.Origin) < 3 {
		return nil, invalidVector("origin", g.Origin, 3)
	}
	return &g, nil
}
