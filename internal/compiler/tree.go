package compiler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/bbmodel"
	"github.com/Faultbox/bbmc/pkg/math"
)

// RootBoneName is the name of the synthesized root bone.
const RootBoneName = "root"

// BuildBoneTree builds the bone hierarchy from the outliner. The top-level
// entries become children of a synthesized root bone. Referenced elements
// are claimed from the pool.
func BuildBoneTree(outliner []bbmodel.OutlinerEntry, pool *ElementPool) (*bbm.Bone, error) {
	root := bbm.NewBone(uuid.Nil, RootBoneName, math.Vec3{})
	if err := addChildren(root, outliner, pool, "outliner"); err != nil {
		return nil, err
	}
	return root, nil
}

// addChildren fills bone from entries in order.
func addChildren(bone *bbm.Bone, entries []bbmodel.OutlinerEntry, pool *ElementPool, path string) error {
	for i, entry := range entries {
		entryPath := fmt.Sprintf("%s[%d]", path, i)

		switch entry.Kind() {
		case bbmodel.OutlinerReference:
			ref, err := entry.Reference()
			if err != nil {
				return errors.Wrap(err, entryPath)
			}
			id, err := parseUUID(ref)
			if err != nil {
				return errors.Wrap(err, entryPath)
			}
			element, err := pool.Claim(id)
			if err != nil {
				return errors.Wrapf(err, "%s in bone %q", entryPath, bone.Name)
			}
			bone.AddElement(element)

		case bbmodel.OutlinerGroup:
			child, err := buildBone(entry, pool, entryPath)
			if err != nil {
				return err
			}
			bone.Children = append(bone.Children, child)

		default:
			return errors.Wrapf(ErrUnknownOutlinerEntry, "%s: %s", entryPath, entry.Raw())
		}
	}
	return nil
}

func buildBone(entry bbmodel.OutlinerEntry, pool *ElementPool, path string) (*bbm.Bone, error) {
	group, err := entry.Group()
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	id, err := parseUUID(*group.UUID)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	origin, err := position(group.Origin)
	if err != nil {
		return nil, errors.Wrapf(err, "%s origin", path)
	}

	bone := bbm.NewBone(id, *group.Name, origin)
	if err := addChildren(bone, group.Children, pool, path+".children"); err != nil {
		return nil, err
	}
	return bone, nil
}
