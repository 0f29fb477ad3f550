package bbm

import (
	"bytes"
	"encoding/binary"
	"io"
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/bbmc/pkg/math"
)

// Encoding errors.
var (
	ErrStringTooLong = errors.New("string exceeds 65535 bytes")
	ErrNilModel      = errors.New("model has no root bone")
)

// Encoder writes models in the binary layout. The first write error is kept
// and every later write is skipped.
type Encoder struct {
	w   io.Writer
	buf [4]byte
	err error
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the root bone followed by the animation trailer.
func (e *Encoder) Encode(m *Model) error {
	if m == nil || m.Root == nil {
		return ErrNilModel
	}

	e.bone(m.Root)

	e.u32(uint32(len(m.Animations)))
	for _, anim := range m.Animations {
		e.str(anim.Name)
		e.f32(anim.Length)
	}

	return e.err
}

// Marshal encodes a model into a byte slice.
func Marshal(m *Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) bone(b *Bone) {
	e.str(b.Name)
	e.vec3(b.Origin)

	e.u32(uint32(len(b.Children)))
	for _, child := range b.Children {
		e.bone(child)
	}

	e.u32(uint32(len(b.Cubes)))
	for _, cube := range b.Cubes {
		e.cube(cube)
	}

	e.u32(uint32(len(b.Items)))
	for _, item := range b.Items {
		e.str(item.Name)
		e.item(item)
	}

	indices := b.AnimationIndices()
	e.u32(uint32(len(indices)))
	for _, idx := range indices {
		e.u32(idx)
		e.animation(b.Animations[idx])
	}
}

func (e *Encoder) cube(c *CubeElement) {
	e.vec3(c.Position)
	e.vec3(c.Scale)
	e.vec3(c.Rotation)
	e.vec3(c.Origin)
	for _, face := range c.Faces() {
		e.f32(face.U1)
		e.f32(face.V1)
		e.f32(face.U2)
		e.f32(face.V2)
	}
}

func (e *Encoder) item(it *ItemElement) {
	e.vec3(it.Position)
	e.vec3(it.Rotation)
	e.vec3(it.Origin)
	e.f32(it.Size.X)
	e.f32(it.Size.Y)
}

func (e *Encoder) animation(a *AnimationData) {
	for _, c := range Channels {
		keys := a.Sorted(c)
		e.u32(uint32(len(keys)))
		for _, kf := range keys {
			e.vec3(kf.Data)
			e.f32(kf.Time)
		}
	}
}

func (e *Encoder) vec3(v math.Vec3) {
	e.f32(v.X)
	e.f32(v.Y)
	e.f32(v.Z)
}

func (e *Encoder) str(s string) {
	if e.err != nil {
		return
	}
	if len(s) > gomath.MaxUint16 {
		e.err = errors.Wrapf(ErrStringTooLong, "%d bytes", len(s))
		return
	}
	binary.BigEndian.PutUint16(e.buf[:2], uint16(len(s)))
	e.write(e.buf[:2])
	if e.err == nil {
		_, e.err = io.WriteString(e.w, s)
	}
}

func (e *Encoder) u32(v uint32) {
	binary.BigEndian.PutUint32(e.buf[:], v)
	e.write(e.buf[:])
}

func (e *Encoder) f32(v float32) {
	e.u32(gomath.Float32bits(v))
}

func (e *Encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}
