package bbmodel

import (
	"fmt"

	"github.com/pkg/errors"
)

// Validate checks that every field the compiler depends on is present.
// Fields that are only read conditionally (outliner groups, keyframe
// values) are checked when they are decoded.
func (d *Document) Validate() error {
	if d.Resolution == nil {
		return missing("resolution")
	}
	if d.Resolution.Width == nil {
		return missing("resolution.width")
	}
	if d.Resolution.Height == nil {
		return missing("resolution.height")
	}

	for i := range d.Elements {
		if err := d.Elements[i].Validate(); err != nil {
			return errors.Wrapf(err, "elements[%d]", i)
		}
	}

	for i := range d.Animations {
		if err := d.Animations[i].validate(); err != nil {
			return errors.Wrapf(err, "animations[%d]", i)
		}
	}

	return nil
}

// Validate checks the fields required to compile the element.
func (e *Element) Validate() error {
	if e.UUID == nil {
		return missing("uuid")
	}
	if e.Name == nil {
		return missing("name")
	}
	for _, v := range []struct {
		name  string
		value []float32
	}{
		{"from", e.From},
		{"to", e.To},
		{"origin", e.Origin},
	} {
		if v.value == nil {
			return missing(v.name)
		}
		if len(v.value) < 3 {
			return invalidVector(v.name, v.value, 3)
		}
	}
	// Rotation is optional but must be complete when given
	if e.Rotation != nil && len(e.Rotation) < 3 {
		return invalidVector("rotation", e.Rotation, 3)
	}

	if e.IsItem() {
		return nil
	}

	if e.Faces == nil {
		return missing("faces")
	}
	for _, f := range e.Faces.ordered() {
		if f.face == nil {
			return missing("faces." + f.name)
		}
		if f.face.UV == nil {
			return missing("faces." + f.name + ".uv")
		}
		if len(f.face.UV) < 4 {
			return invalidVector("faces."+f.name+".uv", f.face.UV, 4)
		}
	}
	return nil
}

type namedFace struct {
	name string
	face *Face
}

// ordered returns the faces in emission order: front, back, left, right,
// up, down.
func (f *Faces) ordered() []namedFace {
	return []namedFace{
		{"north", f.North},
		{"south", f.South},
		{"west", f.West},
		{"east", f.East},
		{"up", f.Up},
		{"down", f.Down},
	}
}

func (a *Animation) validate() error {
	if a.Name == nil {
		return missing("name")
	}
	if a.Length == nil {
		return missing("length")
	}
	for _, id := range a.AnimatorIDs() {
		for i, kf := range a.Animators[id].Keyframes {
			if kf.Channel == nil {
				return errors.Wrapf(missing("channel"), "animators[%s].keyframes[%d]", id, i)
			}
			if kf.Time == nil {
				return errors.Wrapf(missing("time"), "animators[%s].keyframes[%d]", id, i)
			}
		}
	}
	return nil
}

func missing(field string) error {
	return errors.Wrap(ErrMissingField, field)
}

func invalidVector(field string, v []float32, want int) error {
	return errors.Wrap(ErrInvalidField, fmt.Sprintf("%s: expected %d components, got %d", field, want, len(v)))
}
