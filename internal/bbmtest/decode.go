// Package bbmtest reads compiled models back so tests can assert on the
// encoded bytes.
package bbmtest

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/math"
)

// ErrTrailingData is returned when bytes remain after the trailer.
var ErrTrailingData = errors.New("trailing data after animation trailer")

// Decode parses an encoded model. Bone identifiers are not stored in the
// encoding and are left zero.
func Decode(data []byte) (*bbm.Model, error) {
	r := bytes.NewReader(data)

	root, err := readBone(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading root bone")
	}

	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, errors.Wrap(err, "reading animation count")
	}

	m := &bbm.Model{Root: root, Animations: make([]bbm.AnimationMeta, count)}
	for i := range m.Animations {
		name, err := readString(r)
		if err != nil {
			return nil, errors.Wrapf(err, "reading animation %d name", i)
		}
		m.Animations[i].Name = name
		if err := binary.Read(r, binary.BigEndian, &m.Animations[i].Length); err != nil {
			return nil, errors.Wrapf(err, "reading animation %d length", i)
		}
	}

	if r.Len() != 0 {
		return nil, errors.Wrapf(ErrTrailingData, "%d bytes", r.Len())
	}
	return m, nil
}

func readBone(r io.Reader) (*bbm.Bone, error) {
	name, err := readString(r)
	if err != nil {
		return nil, err
	}

	var origin math.Vec3
	if err := binary.Read(r, binary.BigEndian, &origin); err != nil {
		return nil, err
	}

	b := &bbm.Bone{Name: name, Origin: origin, Animations: make(map[uint32]*bbm.AnimationData)}

	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		child, err := readBone(r)
		if err != nil {
			return nil, errors.Wrapf(err, "bone %q child %d", name, i)
		}
		b.Children = append(b.Children, child)
	}

	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		var cube struct {
			Position, Scale, Rotation, Origin math.Vec3
			Faces                             [6]bbm.CubeElementFace
		}
		if err := binary.Read(r, binary.BigEndian, &cube); err != nil {
			return nil, errors.Wrapf(err, "bone %q cube %d", name, i)
		}
		b.Cubes = append(b.Cubes, &bbm.CubeElement{
			Position: cube.Position,
			Scale:    cube.Scale,
			Rotation: cube.Rotation,
			Origin:   cube.Origin,
			Front:    cube.Faces[0],
			Back:     cube.Faces[1],
			Left:     cube.Faces[2],
			Right:    cube.Faces[3],
			Up:       cube.Faces[4],
			Down:     cube.Faces[5],
		})
	}

	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		itemName, err := readString(r)
		if err != nil {
			return nil, err
		}
		var item struct {
			Position, Rotation, Origin math.Vec3
			Size                       math.Vec2
		}
		if err := binary.Read(r, binary.BigEndian, &item); err != nil {
			return nil, errors.Wrapf(err, "bone %q item %d", name, i)
		}
		b.Items = append(b.Items, &bbm.ItemElement{
			Name:     itemName,
			Position: item.Position,
			Rotation: item.Rotation,
			Origin:   item.Origin,
			Size:     item.Size,
		})
	}

	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		var idx uint32
		if err := binary.Read(r, binary.BigEndian, &idx); err != nil {
			return nil, err
		}
		data := &bbm.AnimationData{}
		for _, c := range bbm.Channels {
			var n uint32
			if err := binary.Read(r, binary.BigEndian, &n); err != nil {
				return nil, err
			}
			keys := make([]bbm.AnimationKeyframe, n)
			if err := binary.Read(r, binary.BigEndian, keys); err != nil {
				return nil, errors.Wrapf(err, "bone %q animation %d %s", name, idx, c)
			}
			for _, kf := range keys {
				data.Add(c, kf)
			}
		}
		b.Animations[idx] = data
	}

	return b, nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
