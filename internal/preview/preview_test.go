package preview

import (
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/math"
)

func sampleModel() *bbm.Model {
	root := bbm.NewBone(uuid.Nil, "root", math.Vec3{})
	arm := bbm.NewBone(uuid.New(), "arm", math.Vec3{X: 0.5, Y: 1})
	hand := bbm.NewBone(uuid.New(), "hand", math.Vec3{Y: 2})
	root.Children = []*bbm.Bone{arm}
	arm.Children = []*bbm.Bone{hand}
	arm.AddElement(&bbm.CubeElement{Position: math.Vec3{X: 1}, Scale: math.Vec3{X: 1, Y: 2, Z: 0.5}, Origin: math.Vec3{X: 0.5, Y: 1}})
	hand.AddElement(&bbm.ItemElement{Name: "torch", Position: math.Vec3{Y: 2}, Origin: math.Vec3{Y: 2}, Size: math.Vec2{X: 0.5, Y: 1}})
	return &bbm.Model{Root: root}
}

func nodesByName(doc *gltf.Document) map[string]*gltf.Node {
	byName := make(map[string]*gltf.Node)
	for _, n := range doc.Nodes {
		byName[n.Name] = n
	}
	return byName
}

// worldTranslation sums the translations from the scene root down to the
// named node. Only valid while no ancestor rotates or scales.
func worldTranslation(t *testing.T, doc *gltf.Document, name string) [3]float32 {
	t.Helper()

	parent := make(map[uint32]uint32)
	target := -1
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			parent[c] = uint32(i)
		}
		if n.Name == name {
			target = i
		}
	}
	require.NotEqual(t, -1, target, "node %q not found", name)

	var sum [3]float32
	idx := uint32(target)
	for {
		tr := doc.Nodes[idx].Translation
		sum[0] += tr[0]
		sum[1] += tr[1]
		sum[2] += tr[2]
		p, ok := parent[idx]
		if !ok {
			return sum
		}
		idx = p
	}
}

func TestSkeleton(t *testing.T) {
	doc, err := Skeleton(sampleModel())
	require.NoError(t, err)

	// root, arm, hand, torch pivot and geometry, arm cube pivot and geometry
	require.Len(t, doc.Nodes, 7)
	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)

	byName := nodesByName(doc)

	arm := byName["arm"]
	require.NotNil(t, arm)
	assert.Equal(t, [3]float32{0.5, 1, 0}, arm.Translation)
	assert.Len(t, arm.Children, 2)

	cube := byName["arm.cube0"]
	require.NotNil(t, cube)
	assert.Equal(t, [3]float32{0, 0, 0}, cube.Translation)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, cube.Rotation)
	require.Len(t, cube.Children, 1)

	box := doc.Nodes[cube.Children[0]]
	assert.Equal(t, "arm.cube0.geometry", box.Name)
	assert.Equal(t, [3]float32{0.5, -1, 0}, box.Translation)
	assert.Equal(t, [3]float32{1, 2, 0.5}, box.Scale)

	torch := byName["torch.geometry"]
	require.NotNil(t, torch)
	assert.Equal(t, [3]float32{0.5, 1, 1}, torch.Scale)
}

func TestSkeleton_NestedBonesKeepAbsolutePositions(t *testing.T) {
	root := bbm.NewBone(uuid.Nil, "root", math.Vec3{})
	body := bbm.NewBone(uuid.New(), "body", math.Vec3{Y: 1})
	head := bbm.NewBone(uuid.New(), "head", math.Vec3{Y: 1})
	hat := bbm.NewBone(uuid.New(), "hat", math.Vec3{X: 0.25, Y: 2})
	root.Children = []*bbm.Bone{body}
	body.Children = []*bbm.Bone{head}
	head.Children = []*bbm.Bone{hat}
	head.AddElement(&bbm.CubeElement{
		Position: math.Vec3{X: -0.5, Y: 1},
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Origin:   math.Vec3{Y: 1.5},
	})
	hat.AddElement(&bbm.ItemElement{
		Name:     "feather",
		Position: math.Vec3{X: 0.25, Y: 2.5},
		Origin:   math.Vec3{X: 0.25, Y: 2.5},
		Size:     math.Vec2{X: 0.5, Y: 0.5},
	})

	doc, err := Skeleton(&bbm.Model{Root: root})
	require.NoError(t, err)

	tests := []struct {
		node string
		want [3]float32
	}{
		{"body", [3]float32{0, 1, 0}},
		{"head", [3]float32{0, 1, 0}},
		{"hat", [3]float32{0.25, 2, 0}},
		{"head.cube0", [3]float32{0, 1.5, 0}},
		{"head.cube0.geometry", [3]float32{-0.5, 1, 0}},
		{"feather", [3]float32{0.25, 2.5, 0}},
		{"feather.geometry", [3]float32{0.25, 2.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.node, func(t *testing.T) {
			assert.Equal(t, tt.want, worldTranslation(t, doc, tt.node))
		})
	}
}

func TestSkeleton_RotatesAboutOrigin(t *testing.T) {
	root := bbm.NewBone(uuid.Nil, "root", math.Vec3{})
	root.AddElement(&bbm.CubeElement{
		Position: math.Vec3{},
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Rotation: math.Vec3{Y: gomath.Pi / 2},
		Origin:   math.Vec3{X: 1},
	})

	doc, err := Skeleton(&bbm.Model{Root: root})
	require.NoError(t, err)

	byName := nodesByName(doc)
	pivot := byName["root.cube0"]
	require.NotNil(t, pivot)
	assert.Equal(t, [3]float32{1, 0, 0}, pivot.Translation)

	q := pivot.Rotation
	assert.InDelta(t, 0, q[0], 1e-6)
	assert.InDelta(t, gomath.Sqrt2/2, q[1], 1e-6)
	assert.InDelta(t, 0, q[2], 1e-6)
	assert.InDelta(t, gomath.Sqrt2/2, q[3], 1e-6)

	geometry := byName["root.cube0.geometry"]
	require.NotNil(t, geometry)
	assert.Equal(t, [3]float32{-1, 0, 0}, geometry.Translation)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, geometry.Rotation)
}

func TestSkeleton_NilModel(t *testing.T) {
	_, err := Skeleton(&bbm.Model{})
	assert.ErrorIs(t, err, bbm.ErrNilModel)
}

func TestWriteSkeleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview", "model.gltf")
	require.NoError(t, WriteSkeleton(path, sampleModel()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 7)
}
