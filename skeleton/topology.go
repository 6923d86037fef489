package skeleton

import (
	"github.com/pkg/errors"
	"github.com/swdee/go-kinectlite"
)

var (
	// ErrUnknownJointType is returned for a JointType outside of the known
	// joint set
	ErrUnknownJointType = errors.New("unknown joint type")
	// ErrUnknownBoneEdge is returned when asking for the bone ending at the
	// root joint, which has none
	ErrUnknownBoneEdge = errors.New("joint has no bone edge")
)

// Root is the joint the skeleton tree hangs from
const Root = kinectlite.HipCenter

// BoneEdge connects a parent joint to a child joint
type BoneEdge struct {
	Parent kinectlite.JointType
	Child  kinectlite.JointType
}

// parents defines the skeleton tree.  Each joint maps to the joint one step
// closer to the root, the root maps to itself.
var parents = [kinectlite.JointCount]kinectlite.JointType{
	kinectlite.HipCenter:      kinectlite.HipCenter,
	kinectlite.Spine:          kinectlite.HipCenter,
	kinectlite.ShoulderCenter: kinectlite.Spine,
	kinectlite.Head:           kinectlite.ShoulderCenter,
	kinectlite.ShoulderLeft:   kinectlite.ShoulderCenter,
	kinectlite.ElbowLeft:      kinectlite.ShoulderLeft,
	kinectlite.WristLeft:      kinectlite.ElbowLeft,
	kinectlite.HandLeft:       kinectlite.WristLeft,
	kinectlite.ShoulderRight:  kinectlite.ShoulderCenter,
	kinectlite.ElbowRight:     kinectlite.ShoulderRight,
	kinectlite.WristRight:     kinectlite.ElbowRight,
	kinectlite.HandRight:      kinectlite.WristRight,
	kinectlite.HipLeft:        kinectlite.HipCenter,
	kinectlite.KneeLeft:       kinectlite.HipLeft,
	kinectlite.AnkleLeft:      kinectlite.KneeLeft,
	kinectlite.FootLeft:       kinectlite.AnkleLeft,
	kinectlite.HipRight:       kinectlite.HipCenter,
	kinectlite.KneeRight:      kinectlite.HipRight,
	kinectlite.AnkleRight:     kinectlite.KneeRight,
	kinectlite.FootRight:      kinectlite.AnkleRight,
}

// bones lists every edge of the tree in child joint order
var bones = func() []BoneEdge {
	out := make([]BoneEdge, 0, kinectlite.JointCount-1)

	for j := kinectlite.JointType(0); j < kinectlite.JointCount; j++ {
		if j == Root {
			continue
		}
		out = append(out, BoneEdge{Parent: parents[j], Child: j})
	}

	return out
}()

// Bones returns all bone edges of the skeleton, ordered by child joint
func Bones() []BoneEdge {
	out := make([]BoneEdge, len(bones))
	copy(out, bones)
	return out
}

// Parent returns the joint one step closer to the root, the bool is false
// for the root itself
func Parent(j kinectlite.JointType) (kinectlite.JointType, bool, error) {
	if !j.Valid() {
		return 0, false, errors.Wrapf(ErrUnknownJointType, "%d", int(j))
	}

	if j == Root {
		return 0, false, nil
	}

	return parents[j], true, nil
}

// BoneFor returns the bone edge that ends at the given child joint
func BoneFor(child kinectlite.JointType) (BoneEdge, error) {
	parent, ok, err := Parent(child)

	if err != nil {
		return BoneEdge{}, err
	}

	if !ok {
		return BoneEdge{}, errors.Wrapf(ErrUnknownBoneEdge, "%s is the root", child)
	}

	return BoneEdge{Parent: parent, Child: child}, nil
}

// NeighborsOf returns the joints directly connected to j, its parent first
// followed by its children in joint order
func NeighborsOf(j kinectlite.JointType) ([]kinectlite.JointType, error) {
	parent, ok, err := Parent(j)

	if err != nil {
		return nil, err
	}

	out := make([]kinectlite.JointType, 0, 4)

	if ok {
		out = append(out, parent)
	}

	for _, b := range bones {
		if b.Parent == j {
			out = append(out, b.Child)
		}
	}

	return out, nil
}
