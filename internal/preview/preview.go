// Package preview exports a compiled model as a glTF node hierarchy so the
// bone layout can be inspected in any glTF viewer.
package preview

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/math"
)

// Skeleton builds a glTF document with one node per bone, cube and item.
// Bone and element coordinates in the model are absolute, so every node is
// translated relative to its parent. Elements get a pivot node at their
// origin carrying the rotation, with the geometry offset below it; cube
// geometry is scaled to the cube size. No meshes are emitted.
func Skeleton(m *bbm.Model) (*gltf.Document, error) {
	if m == nil || m.Root == nil {
		return nil, bbm.ErrNilModel
	}

	doc := gltf.NewDocument()
	root := addBone(doc, m.Root, math.Vec3{})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, root)
	return doc, nil
}

// WriteSkeleton writes the skeleton of m as a glTF file.
func WriteSkeleton(path string, m *bbm.Model) error {
	doc, err := Skeleton(m)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating preview directory")
	}
	if err := gltf.Save(doc, path); err != nil {
		return errors.Wrap(err, "saving glTF preview")
	}
	return nil
}

// addBone appends b and its subtree. parentOrigin is the absolute origin
// of the parent bone.
func addBone(doc *gltf.Document, b *bbm.Bone, parentOrigin math.Vec3) uint32 {
	idx := appendNode(doc, transformNode(b.Name, b.Origin.Sub(parentOrigin), math.QuatIdentity(), unitScale))

	var children []uint32
	for _, child := range b.Children {
		children = append(children, addBone(doc, child, b.Origin))
	}
	for i, cube := range b.Cubes {
		name := cubeName(b, i)
		children = append(children, addElement(doc, b, name, cube.Position, cube.Rotation, cube.Origin, cube.Scale.Array()))
	}
	for _, item := range b.Items {
		scale := [3]float32{item.Size.X, item.Size.Y, 1}
		children = append(children, addElement(doc, b, item.Name, item.Position, item.Rotation, item.Origin, scale))
	}

	doc.Nodes[idx].Children = children
	return idx
}

// addElement appends a pivot node at the element origin and a geometry node
// at the element's from corner below it.
func addElement(doc *gltf.Document, b *bbm.Bone, name string, position, rotation, origin math.Vec3, scale [3]float32) uint32 {
	pivot := appendNode(doc, transformNode(name, origin.Sub(b.Origin), math.QuatFromEuler(rotation), unitScale))
	geometry := appendNode(doc, transformNode(name+".geometry", position.Sub(origin), math.QuatIdentity(), scale))
	doc.Nodes[pivot].Children = []uint32{geometry}
	return pivot
}

var unitScale = [3]float32{1, 1, 1}

func transformNode(name string, translation math.Vec3, rotation math.Quat, scale [3]float32) *gltf.Node {
	return &gltf.Node{
		Name:        name,
		Translation: translation.Array(),
		Rotation:    rotation.Array(),
		Scale:       scale,
	}
}

func appendNode(doc *gltf.Document, n *gltf.Node) uint32 {
	doc.Nodes = append(doc.Nodes, n)
	return uint32(len(doc.Nodes) - 1)
}

func cubeName(b *bbm.Bone, i int) string {
	return fmt.Sprintf("%s.cube%d", b.Name, i)
}
