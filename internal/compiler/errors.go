package compiler

import "github.com/pkg/errors"

// Compilation errors. Every one of them aborts the compilation.
var (
	ErrInvalidUUID          = errors.New("invalid uuid")
	ErrElementNotFound      = errors.New("element not found")
	ErrBoneNotFound         = errors.New("bone not found")
	ErrUnknownOutlinerEntry = errors.New("unrecognized outliner entry")
	ErrUnknownChannel       = errors.New("unknown keyframe channel")
	ErrUnclaimedElements    = errors.New("elements not referenced by the outliner")
)
