package compiler

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/bbmc/pkg/bbm"
	"github.com/Faultbox/bbmc/pkg/bbmodel"
	"github.com/Faultbox/bbmc/pkg/math"
)

// AttachAnimations adds the keyframes of every animation to the bones they
// target and returns the animation metadata in document order. The position
// of an animation in the list is its index in the encoded model.
func AttachAnimations(root *bbm.Bone, animations []bbmodel.Animation, strict bool) ([]bbm.AnimationMeta, error) {
	meta := make([]bbm.AnimationMeta, 0, len(animations))

	for i := range animations {
		anim := &animations[i]
		index := uint32(i)
		if anim.Name == nil || anim.Length == nil {
			return nil, errors.Wrapf(bbmodel.ErrMissingField, "animations[%d] name or length", i)
		}
		meta = append(meta, bbm.AnimationMeta{Name: *anim.Name, Length: *anim.Length})

		for _, key := range anim.AnimatorIDs() {
			if err := attachAnimator(root, index, key, anim.Animators[key], strict); err != nil {
				return nil, errors.Wrapf(err, "animation %q", *anim.Name)
			}
		}
	}

	return meta, nil
}

func attachAnimator(root *bbm.Bone, index uint32, key string, animator bbmodel.Animator, strict bool) error {
	id, err := parseUUID(key)
	if err != nil {
		return errors.Wrap(err, "animator")
	}
	bone := root.FindBone(id)
	if bone == nil {
		return errors.Wrapf(ErrBoneNotFound, "%s", id)
	}

	data := bone.AnimationFor(index)
	for i := range animator.Keyframes {
		kf := &animator.Keyframes[i]
		keyframe, channel, err := convertKeyframe(kf, strict)
		if err != nil {
			return errors.Wrapf(err, "bone %q keyframe %d", bone.Name, i)
		}
		data.Add(channel, keyframe)
	}
	return nil
}

// convertKeyframe reads the channel, time and first data point of a
// keyframe. Rotations are converted to radians, positions and scales to
// world units.
func convertKeyframe(kf *bbmodel.Keyframe, strict bool) (bbm.AnimationKeyframe, bbm.Channel, error) {
	if kf.Channel == nil || kf.Time == nil {
		return bbm.AnimationKeyframe{}, 0, errors.Wrap(bbmodel.ErrMissingField, "channel or time")
	}
	channel, ok := bbm.ParseChannel(*kf.Channel)
	if !ok {
		return bbm.AnimationKeyframe{}, 0, errors.Wrapf(ErrUnknownChannel, "%q", *kf.Channel)
	}

	x, y, z, err := kf.FirstDataPoint().Values(strict)
	if err != nil {
		return bbm.AnimationKeyframe{}, 0, err
	}
	v := math.Vec3{X: x, Y: y, Z: z}
	if channel == bbm.ChannelRotation {
		v = math.DegreesToRadians(v)
	} else {
		v = math.UnitsToWorld(v)
	}

	return bbm.AnimationKeyframe{Data: v, Time: *kf.Time}, channel, nil
}
