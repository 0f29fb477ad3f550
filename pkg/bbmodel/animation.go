package bbmodel

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// UnmarshalJSON decodes the animation and records the order of the
// animator keys.
func (a *Animation) UnmarshalJSON(data []byte) error {
	var fields struct {
		Name      *string         `json:"name"`
		Length    *float32        `json:"length"`
		Animators json.RawMessage `json:"animators"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*a = Animation{Name: fields.Name, Length: fields.Length}
	raw := bytes.TrimSpace(fields.Animators)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, &a.Animators); err != nil {
		return errors.Wrap(err, "animators")
	}
	order, err := objectKeys(raw)
	if err != nil {
		return errors.Wrap(err, "animators")
	}
	a.animatorOrder = order
	return nil
}

// objectKeys returns the keys of a JSON object in document order. A key
// that repeats keeps its first position.
func objectKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("expected an object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// AnimatorIDs returns the animator keys in document order. Keys without a
// document position, such as those added in code, follow in sorted order.
func (a *Animation) AnimatorIDs() []string {
	ids := make([]string, 0, len(a.Animators))
	listed := make(map[string]bool, len(a.animatorOrder))
	for _, id := range a.animatorOrder {
		if _, ok := a.Animators[id]; ok && !listed[id] {
			listed[id] = true
			ids = append(ids, id)
		}
	}

	var rest []string
	for id := range a.Animators {
		if !listed[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(ids, rest...)
}

// FirstDataPoint returns the keyframe value, or an empty data point when the
// keyframe has none.
func (k *Keyframe) FirstDataPoint() DataPoint {
	if len(k.DataPoints) == 0 {
		return DataPoint{}
	}
	return k.DataPoints[0]
}

// Values returns the three components of the data point.
func (p DataPoint) Values(strict bool) (x, y, z float32, err error) {
	if x, err = p.X.Float(strict); err != nil {
		return 0, 0, 0, err
	}
	if y, err = p.Y.Float(strict); err != nil {
		return 0, 0, 0, err
	}
	if z, err = p.Z.Float(strict); err != nil {
		return 0, 0, 0, err
	}
	return x, y, z, nil
}
