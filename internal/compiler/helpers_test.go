package compiler

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/bbmc/pkg/bbmodel"
)

const (
	idCubeA = "11111111-1111-4111-8111-111111111111"
	idCubeB = "22222222-2222-4222-8222-222222222222"
	idItem  = "33333333-3333-4333-8333-333333333333"
	idBoneA = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	idBoneB = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	idBoneC = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
)

type object = map[string]any

func uvFaces(uv ...float64) object {
	face := object{"uv": uv}
	return object{"north": face, "south": face, "east": face, "west": face, "up": face, "down": face}
}

func cubeJSON(id, name string, from, to []float64) object {
	return object{
		"uuid":   id,
		"name":   name,
		"from":   from,
		"to":     to,
		"origin": []float64{0, 0, 0},
		"faces":  uvFaces(0, 0, 16, 16),
	}
}

func itemJSON(id, name string, from, to []float64) object {
	return object{
		"uuid":   id,
		"name":   name,
		"from":   from,
		"to":     to,
		"origin": []float64{0, 0, 0},
	}
}

func boneJSON(id, name string, children ...any) object {
	if children == nil {
		children = []any{}
	}
	return object{"uuid": id, "name": name, "origin": []float64{0, 0, 0}, "children": children}
}

func keyframeJSON(channel string, time float64, x, y, z any) object {
	return object{
		"channel":     channel,
		"time":        time,
		"data_points": []any{object{"x": x, "y": y, "z": z}},
	}
}

func animationJSON(name string, length float64, animators object) object {
	return object{"name": name, "length": length, "animators": animators}
}

func documentJSON(elements, outliner, animations []any) object {
	if elements == nil {
		elements = []any{}
	}
	if outliner == nil {
		outliner = []any{}
	}
	if animations == nil {
		animations = []any{}
	}
	return object{
		"resolution": object{"width": 16, "height": 16},
		"elements":   elements,
		"outliner":   outliner,
		"animations": animations,
	}
}

func parseDoc(t *testing.T, doc object) *bbmodel.Document {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	parsed, err := bbmodel.Parse(data)
	require.NoError(t, err)
	return parsed
}
