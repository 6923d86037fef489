package kinectlite

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// JointType identifies one of the skeletal landmarks reported by the sensor.
// The values follow the order the sensor reports joints in.
type JointType int

const (
	HipCenter JointType = iota
	Spine
	ShoulderCenter
	Head
	ShoulderLeft
	ElbowLeft
	WristLeft
	HandLeft
	ShoulderRight
	ElbowRight
	WristRight
	HandRight
	HipLeft
	KneeLeft
	AnkleLeft
	FootLeft
	HipRight
	KneeRight
	AnkleRight
	FootRight
)

// JointCount is the number of joints in a fully tracked skeleton
const JointCount = 20

var jointNames = [JointCount]string{
	"HipCenter", "Spine", "ShoulderCenter", "Head",
	"ShoulderLeft", "ElbowLeft", "WristLeft", "HandLeft",
	"ShoulderRight", "ElbowRight", "WristRight", "HandRight",
	"HipLeft", "KneeLeft", "AnkleLeft", "FootLeft",
	"HipRight", "KneeRight", "AnkleRight", "FootRight",
}

// Valid returns true if the joint type is one of the known joints
func (j JointType) Valid() bool {
	return j >= HipCenter && j <= FootRight
}

func (j JointType) String() string {
	if !j.Valid() {
		return fmt.Sprintf("JointType(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJointType returns the JointType for the given name, the match is
// case insensitive
func ParseJointType(name string) (JointType, error) {
	for i, n := range jointNames {
		if strings.EqualFold(n, name) {
			return JointType(i), nil
		}
	}
	return 0, errors.Errorf("unknown joint name %q", name)
}

// JointTrackingState is the confidence the sensor has in a joint's position
type JointTrackingState int

const (
	JointNotTracked JointTrackingState = iota
	JointInferred
	JointTracked
)

func (s JointTrackingState) String() string {
	switch s {
	case JointInferred:
		return "Inferred"
	case JointTracked:
		return "Tracked"
	default:
		return "NotTracked"
	}
}

// nearModeJoints are the upper body joints still reported when the sensor
// runs in near (seated) mode
var nearModeJoints = map[JointType]bool{
	ShoulderCenter: true,
	Head:           true,
	ShoulderLeft:   true,
	ElbowLeft:      true,
	WristLeft:      true,
	HandLeft:       true,
	ShoulderRight:  true,
	ElbowRight:     true,
	WristRight:     true,
	HandRight:      true,
}

// Joint is a single tracked landmark of a skeleton
type Joint struct {
	// Type of joint
	Type JointType
	// Position in sensor space, in meters
	Position r3.Vector
	// TrackingState of the joint for this frame
	TrackingState JointTrackingState
}

// IsTracked returns true if the sensor tracked the joint directly
func (j Joint) IsTracked() bool {
	return j.TrackingState == JointTracked
}

// IsTrackedOrInferred returns true if the joint has a usable position
func (j Joint) IsTrackedOrInferred() bool {
	return j.TrackingState == JointTracked || j.TrackingState == JointInferred
}

// IsNearModeJoint returns true if the joint is reported in near mode
func (j Joint) IsNearModeJoint() bool {
	return nearModeJoints[j.Type]
}

// Distance returns the euclidean distance in meters between two joints
func (j Joint) Distance(dest Joint) float64 {
	return j.Position.Sub(dest.Position).Norm()
}
