// Package sparse approximates the field with a handful of soft radial blobs,
// one per color stop, each tinted by evaluating the field at its anchor.
package sparse

import "github.com/pthm-cable/gradient/field"

// Role decides how a blob's anchor moves.
type Role uint8

const (
	RoleFollow Role = iota // trails the damped pointer with a slow wobble
	RoleMirror             // mirrors the pointer through the frame center
	RoleCenter             // stays in the middle of the frame
	RoleOrbit              // circles the center
)

func (r Role) String() string {
	switch r {
	case RoleFollow:
		return "follow"
	case RoleMirror:
		return "mirror"
	case RoleCenter:
		return "center"
	case RoleOrbit:
		return "orbit"
	}
	return "unknown"
}

// Anchor is a blob center in normalized field coordinates.
type Anchor struct {
	X, Y float64
}

// Blob ties an entity to a color stop.
type Blob struct {
	Stop   int
	Role   Role
	Radius float64 // fraction of the larger viewport dimension
}

// Tint is the color a blob is drawn with this frame.
type Tint struct {
	Color field.RGB
	Alpha float64
}

// roleFor returns the role and radius of stop i.
func roleFor(i int) (Role, float64) {
	switch i {
	case 0:
		return RoleFollow, 0.6
	case 1:
		return RoleMirror, 0.8
	case 2:
		return RoleCenter, 1.0
	default:
		return RoleOrbit, 0.7
	}
}
