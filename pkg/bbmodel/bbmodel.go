// Package bbmodel decodes the JSON model documents consumed by the compiler.
package bbmodel

import (
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Document errors.
var (
	ErrMalformedDocument = errors.New("malformed model document")
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidField      = errors.New("invalid field")
)

// ItemPrefix marks elements that are compiled as flat item sprites.
const ItemPrefix = "item_"

// Document is a parsed model document.
type Document struct {
	Resolution *Resolution     `json:"resolution"`
	Elements   []Element       `json:"elements"`
	Outliner   []OutlinerEntry `json:"outliner"`
	Animations []Animation     `json:"animations"`
}

// Resolution is the texture size used to normalize face UVs.
type Resolution struct {
	Width  *uint32 `json:"width"`
	Height *uint32 `json:"height"`
}

// Size returns the width and height.
func (r *Resolution) Size() (uint32, uint32) {
	return *r.Width, *r.Height
}

// Element is one entry of the flat element list.
type Element struct {
	UUID     *string   `json:"uuid"`
	Name     *string   `json:"name"`
	From     []float32 `json:"from"`
	To       []float32 `json:"to"`
	Origin   []float32 `json:"origin"`
	Rotation []float32 `json:"rotation"`
	Faces    *Faces    `json:"faces"`
}

// IsItem reports whether the element follows the item naming convention.
func (e *Element) IsItem() bool {
	return e.Name != nil && IsItemName(*e.Name)
}

// Faces holds the six texture faces of a cube element.
type Faces struct {
	North *Face `json:"north"`
	South *Face `json:"south"`
	East  *Face `json:"east"`
	West  *Face `json:"west"`
	Up    *Face `json:"up"`
	Down  *Face `json:"down"`
}

// Face is one textured cube face.
type Face struct {
	UV []float32 `json:"uv"`
}

// Animation is one named animation clip.
type Animation struct {
	Name      *string             `json:"name"`
	Length    *float32            `json:"length"`
	Animators map[string]Animator `json:"animators"`

	// animatorOrder holds the animator keys in document order.
	animatorOrder []string
}

// Animator binds keyframes to a single bone.
type Animator struct {
	Keyframes []Keyframe `json:"keyframes"`
}

// Keyframe is one sample on one channel.
type Keyframe struct {
	Channel    *string     `json:"channel"`
	Time       *float32    `json:"time"`
	DataPoints []DataPoint `json:"data_points"`
}

// DataPoint holds the keyframe value. Components may be numbers or numeric
// strings.
type DataPoint struct {
	X Scalar `json:"x"`
	Y Scalar `json:"y"`
	Z Scalar `json:"z"`
}

// IsItemName reports whether name carries the item prefix.
func IsItemName(name string) bool {
	return strings.HasPrefix(name, ItemPrefix)
}

// ItemDisplayName strips the item prefix from name.
func ItemDisplayName(name string) string {
	return strings.Replace(name, ItemPrefix, "", 1)
}

// Parse decodes a model document. Required fields are checked by
// Validate, which compilation runs before reading the document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(ErrMalformedDocument, "%v", err)
	}
	return &doc, nil
}

// ParseFile decodes a model document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading model file")
	}
	return Parse(data)
}
