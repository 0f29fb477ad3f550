// Package compiler turns a parsed model document into a compiled bone tree.
package compiler

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/bbmodel"
)

// Options controls compilation.
type Options struct {
	// Strict rejects elements never referenced by the outliner and keyframe
	// values that are not numbers. By default both are accepted: unused
	// elements are dropped and bad values read as 0.
	Strict bool

	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// Compiler compiles model documents.
type Compiler struct {
	opts Options
	log  *zap.Logger
}

// New creates a compiler.
func New(opts Options) *Compiler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{opts: opts, log: log}
}

// Compile validates the document, then builds the element pool, the bone
// tree and the animation tracks.
func (c *Compiler) Compile(doc *bbmodel.Document) (*bbm.Model, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	width, height := doc.Resolution.Size()
	c.log.Debug("building element pool",
		zap.Int("elements", len(doc.Elements)),
		zap.Uint32("width", width),
		zap.Uint32("height", height))

	pool, err := newElementPool(doc.Elements, Resolution{Width: width, Height: height}, c.log)
	if err != nil {
		return nil, err
	}
	c.log.Debug("element pool built", zap.Int("elements", pool.Len()))

	root, err := BuildBoneTree(doc.Outliner, pool)
	if err != nil {
		return nil, err
	}

	if remaining := pool.Remaining(); len(remaining) > 0 {
		ids := make([]string, len(remaining))
		for i, id := range remaining {
			ids[i] = id.String()
		}
		if c.opts.Strict {
			return nil, errors.Wrapf(ErrUnclaimedElements, "%v", ids)
		}
		c.log.Debug("dropping elements not referenced by the outliner", zap.Strings("uuids", ids))
	}

	animations, err := AttachAnimations(root, doc.Animations, c.opts.Strict)
	if err != nil {
		return nil, err
	}

	m := &bbm.Model{Root: root, Animations: animations}
	stats := m.Stats()
	c.log.Info("compiled model",
		zap.Int("bones", stats.Bones),
		zap.Int("cubes", stats.Cubes),
		zap.Int("items", stats.Items),
		zap.Int("keyframes", stats.Keyframes),
		zap.Int("animations", stats.Animations))

	return m, nil
}

// Compile compiles a document with default options.
func Compile(doc *bbmodel.Document) (*bbm.Model, error) {
	return New(Options{}).Compile(doc)
}
