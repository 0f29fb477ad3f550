package compiler

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/bbmodel"
	"github.com/Faultbox/bbmc/pkg/math"
)

// Resolution is the texture size used to normalize UVs.
type Resolution struct {
	Width  uint32
	Height uint32
}

// ElementPool holds parsed elements until the outliner claims them. Every
// element can be claimed once.
type ElementPool struct {
	elements map[uuid.UUID]bbm.Element
}

// NewElementPool validates and parses every element of the document.
// Elements named with the item prefix become item elements, everything else
// becomes a cube.
func NewElementPool(elements []bbmodel.Element, res Resolution, log *zap.Logger) (*ElementPool, error) {
	for i := range elements {
		if err := elements[i].Validate(); err != nil {
			return nil, errors.Wrapf(err, "elements[%d]", i)
		}
	}
	return newElementPool(elements, res, log)
}

// newElementPool parses elements that already passed validation.
func newElementPool(elements []bbmodel.Element, res Resolution, log *zap.Logger) (*ElementPool, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &ElementPool{elements: make(map[uuid.UUID]bbm.Element, len(elements))}
	for i := range elements {
		e := &elements[i]
		id, err := parseUUID(*e.UUID)
		if err != nil {
			return nil, errors.Wrapf(err, "elements[%d]", i)
		}

		var parsed bbm.Element
		if e.IsItem() {
			parsed, err = parseItem(e)
		} else {
			parsed, err = parseCube(e, res)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "elements[%d] %q", i, *e.Name)
		}

		if _, dup := p.elements[id]; dup {
			log.Warn("duplicate element uuid, keeping the last one",
				zap.Stringer("uuid", id), zap.String("name", *e.Name))
		}
		p.elements[id] = parsed
	}
	return p, nil
}

// Claim removes an element from the pool and returns it.
func (p *ElementPool) Claim(id uuid.UUID) (bbm.Element, error) {
	e, ok := p.elements[id]
	if !ok {
		return nil, errors.Wrapf(ErrElementNotFound, "%s", id)
	}
	delete(p.elements, id)
	return e, nil
}

// Len returns the number of unclaimed elements.
func (p *ElementPool) Len() int {
	return len(p.elements)
}

// Remaining returns the identifiers of unclaimed elements in sorted order.
func (p *ElementPool) Remaining() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.elements))
	for id := range p.elements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

func parseCube(e *bbmodel.Element, res Resolution) (*bbm.CubeElement, error) {
	from, to, err := corners(e)
	if err != nil {
		return nil, err
	}
	origin, err := position(e.Origin)
	if err != nil {
		return nil, errors.Wrap(err, "origin")
	}
	rotation, err := optionalRotation(e.Rotation)
	if err != nil {
		return nil, err
	}

	faces := e.Faces
	return &bbm.CubeElement{
		Position: from,
		Scale:    to.Sub(from),
		Rotation: rotation,
		Origin:   origin,
		Front:    normalizeFace(faces.North, res),
		Back:     normalizeFace(faces.South, res),
		Left:     normalizeFace(faces.West, res),
		Right:    normalizeFace(faces.East, res),
		Up:       normalizeFace(faces.Up, res),
		Down:     normalizeFace(faces.Down, res),
	}, nil
}

func parseItem(e *bbmodel.Element) (*bbm.ItemElement, error) {
	from, to, err := corners(e)
	if err != nil {
		return nil, err
	}
	origin, err := position(e.Origin)
	if err != nil {
		return nil, errors.Wrap(err, "origin")
	}
	rotation, err := optionalRotation(e.Rotation)
	if err != nil {
		return nil, err
	}

	return &bbm.ItemElement{
		Name:     bbmodel.ItemDisplayName(*e.Name),
		Position: from,
		Rotation: rotation,
		Origin:   origin,
		Size:     to.Sub(from).XY(),
	}, nil
}

// corners converts the from and to corners to world units.
func corners(e *bbmodel.Element) (from, to math.Vec3, err error) {
	if from, err = position(e.From); err != nil {
		return from, to, errors.Wrap(err, "from")
	}
	if to, err = position(e.To); err != nil {
		return from, to, errors.Wrap(err, "to")
	}
	return from, to, nil
}

func position(s []float32) (math.Vec3, error) {
	v, err := math.Vec3FromSlice(s)
	if err != nil {
		return math.Vec3{}, err
	}
	return math.UnitsToWorld(v), nil
}

// optionalRotation converts a rotation in degrees. A missing rotation is
// zero.
func optionalRotation(s []float32) (math.Vec3, error) {
	if s == nil {
		return math.Vec3{}, nil
	}
	v, err := math.Vec3FromSlice(s)
	if err != nil {
		return math.Vec3{}, errors.Wrap(err, "rotation")
	}
	return math.DegreesToRadians(v), nil
}

func normalizeFace(f *bbmodel.Face, res Resolution) bbm.CubeElementFace {
	w, h := float32(res.Width), float32(res.Height)
	return bbm.CubeElementFace{
		U1: f.UV[0] / w,
		V1: f.UV[1] / h,
		U2: f.UV[2] / w,
		V2: f.UV[3] / h,
	}
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Wrapf(ErrInvalidUUID, "%q: %v", s, err)
	}
	return id, nil
}
