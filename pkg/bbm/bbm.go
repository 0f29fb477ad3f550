// Package bbm defines the compiled model tree and its big-endian binary
// encoding.
//
// The layout has no header or version field. A file is a single root bone
// record followed by the animation trailer:
//
//	bone      = string name, vec3 origin,
//	            u32 n, n*bone, u32 n, n*cube, u32 n, n*(string name, item),
//	            u32 n, n*(u32 animation index, animation)
//	cube      = vec3 position, vec3 scale, vec3 rotation, vec3 origin, 6*face
//	face      = f32 u1, f32 v1, f32 u2, f32 v2
//	item      = vec3 position, vec3 rotation, vec3 origin, vec2 size
//	animation = 3*(u32 n, n*(vec3 data, f32 time))  position, rotation, scale
//	trailer   = u32 n, n*(string name, f32 length)
//	string    = u16 byte length, bytes
package bbm

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/Faultbox/bbmc/pkg/math"
)

// FileExtension is the conventional extension of compiled models.
const FileExtension = ".bbm"

// Channel identifies an animatable bone property.
type Channel int

const (
	ChannelPosition Channel = iota // Translation keyframes
	ChannelRotation                // Euler rotation keyframes (radians)
	ChannelScale                   // Scale keyframes
)

// Channels lists every channel in emission order.
var Channels = [...]Channel{ChannelPosition, ChannelRotation, ChannelScale}

// String returns the channel name as written in model documents.
func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelRotation:
		return "rotation"
	case ChannelScale:
		return "scale"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ParseChannel maps a channel name to a Channel.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "position":
		return ChannelPosition, true
	case "rotation":
		return ChannelRotation, true
	case "scale":
		return ChannelScale, true
	default:
		return 0, false
	}
}

// Element is a geometry element owned by a bone: either a *CubeElement or
// an *ItemElement.
type Element interface {
	element()
}

// CubeElementFace is a texture rectangle in normalized UV space.
type CubeElementFace struct {
	U1, V1 float32
	U2, V2 float32
}

// CubeElement is a textured box.
type CubeElement struct {
	Position math.Vec3 // "from" corner
	Scale    math.Vec3 // Size ("to" - "from")
	Rotation math.Vec3 // Euler angles (radians)
	Origin   math.Vec3 // Pivot point

	Front CubeElementFace // North
	Back  CubeElementFace // South
	Left  CubeElementFace // West
	Right CubeElementFace // East
	Up    CubeElementFace
	Down  CubeElementFace
}

func (*CubeElement) element() {}

// Faces returns the faces in emission order.
func (c *CubeElement) Faces() [6]CubeElementFace {
	return [6]CubeElementFace{c.Front, c.Back, c.Left, c.Right, c.Up, c.Down}
}

// ItemElement is a flat sprite.
type ItemElement struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3
	Origin   math.Vec3
	Size     math.Vec2
}

func (*ItemElement) element() {}

// AnimationKeyframe is one sample on one channel.
type AnimationKeyframe struct {
	Data math.Vec3
	Time float32 // Seconds
}

// AnimationData holds a bone's keyframes for one animation.
type AnimationData struct {
	Position []AnimationKeyframe
	Rotation []AnimationKeyframe
	Scale    []AnimationKeyframe
}

// Add appends a keyframe to a channel.
func (a *AnimationData) Add(c Channel, kf AnimationKeyframe) {
	switch c {
	case ChannelPosition:
		a.Position = append(a.Position, kf)
	case ChannelRotation:
		a.Rotation = append(a.Rotation, kf)
	case ChannelScale:
		a.Scale = append(a.Scale, kf)
	}
}

// Keyframes returns the keyframes of a channel in insertion order.
func (a *AnimationData) Keyframes(c Channel) []AnimationKeyframe {
	switch c {
	case ChannelPosition:
		return a.Position
	case ChannelRotation:
		return a.Rotation
	case ChannelScale:
		return a.Scale
	default:
		return nil
	}
}

// Sorted returns a copy of a channel's keyframes ordered by time. Keyframes
// with equal times keep their insertion order.
func (a *AnimationData) Sorted(c Channel) []AnimationKeyframe {
	keys := append([]AnimationKeyframe(nil), a.Keyframes(c)...)
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].Time < keys[j].Time
	})
	return keys
}

// Bone is a node in the model hierarchy.
type Bone struct {
	ID     uuid.UUID
	Name   string
	Origin math.Vec3

	Children []*Bone
	Cubes    []*CubeElement
	Items    []*ItemElement

	// Animations maps an animation index to this bone's keyframes.
	Animations map[uint32]*AnimationData
}

// NewBone creates an empty bone.
func NewBone(id uuid.UUID, name string, origin math.Vec3) *Bone {
	return &Bone{
		ID:         id,
		Name:       name,
		Origin:     origin,
		Animations: make(map[uint32]*AnimationData),
	}
}

// AddElement appends a cube or item element to the bone.
func (b *Bone) AddElement(e Element) {
	switch e := e.(type) {
	case *CubeElement:
		b.Cubes = append(b.Cubes, e)
	case *ItemElement:
		b.Items = append(b.Items, e)
	}
}

// FindBone returns the first bone with the given id in a pre-order walk of
// the subtree, or nil.
func (b *Bone) FindBone(id uuid.UUID) *Bone {
	if b.ID == id {
		return b
	}
	for _, child := range b.Children {
		if found := child.FindBone(id); found != nil {
			return found
		}
	}
	return nil
}

// AnimationFor returns the bone's keyframes for an animation, creating
// them if needed.
func (b *Bone) AnimationFor(index uint32) *AnimationData {
	if b.Animations == nil {
		b.Animations = make(map[uint32]*AnimationData)
	}
	data, ok := b.Animations[index]
	if !ok {
		data = &AnimationData{}
		b.Animations[index] = data
	}
	return data
}

// AnimationIndices returns the animation indices with data on this bone in
// ascending order.
func (b *Bone) AnimationIndices() []uint32 {
	indices := make([]uint32, 0, len(b.Animations))
	for idx := range b.Animations {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices
}

// Walk calls fn for every bone of the subtree in pre-order.
func (b *Bone) Walk(fn func(*Bone)) {
	fn(b)
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

// AnimationMeta is the document-level description of an animation.
type AnimationMeta struct {
	Name   string
	Length float32 // Seconds
}

// Model is a compiled model.
type Model struct {
	Root       *Bone
	Animations []AnimationMeta
}
