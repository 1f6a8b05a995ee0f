package diagram

import (
	"strings"

	"github.com/matzehuels/isostack/pkg/errors"
)

// Face is the side of a reference component a child attaches to.
type Face string

const (
	FaceCenter     Face = "center"
	FaceTop        Face = "top"
	FaceBottom     Face = "bottom"
	FaceFrontLeft  Face = "front-left"
	FaceFrontRight Face = "front-right"
	FaceBackLeft   Face = "back-left"
	FaceBackRight  Face = "back-right"
)

// Faces lists every face in matching order.
var Faces = []Face{FaceFrontLeft, FaceFrontRight, FaceBackLeft, FaceBackRight, FaceBottom, FaceTop, FaceCenter}

// opposite maps a face to the anchor on the new shape that meets it.
var opposite = map[Face]string{
	FaceTop:        "bottom",
	FaceBottom:     "top",
	FaceFrontLeft:  "back-right",
	FaceFrontRight: "back-left",
	FaceBackLeft:   "front-right",
	FaceBackRight:  "front-left",
}

// Position is the structured form of a position token.
type Position struct {
	Face Face
	// Anchor is the part of the token after the face, "" when the token
	// names the face alone.
	Anchor string
}

// Center is the position of the root component.
var Center = Position{Face: FaceCenter}

// ParsePosition parses a token such as "top", "front-left" or
// "front-left-back-right". Returns an ErrCodeInvalidInput error if the
// token does not start with a known face.
func ParsePosition(token string) (Position, error) {
	for _, f := range Faces {
		s := string(f)
		if token == s {
			return Position{Face: f}, nil
		}
		if rest, ok := strings.CutPrefix(token, s+"-"); ok && rest != "" {
			if f == FaceCenter {
				break
			}
			return Position{Face: f, Anchor: rest}, nil
		}
	}
	return Position{}, errors.New(errors.ErrCodeInvalidInput, "unknown position %q", token)
}

// String returns the position token.
func (p Position) String() string {
	if p.Anchor == "" {
		return string(p.Face)
	}
	return string(p.Face) + "-" + p.Anchor
}

// IsCenter reports whether p is the root position.
func (p Position) IsCenter() bool { return p.Face == FaceCenter }

// ReferenceAnchor is the anchor on the reference component: the full token.
func (p Position) ReferenceAnchor() string { return p.String() }

// ContactAnchor is the anchor on the attached component that meets the
// reference anchor. The second result is false for the center position.
func (p Position) ContactAnchor() (string, bool) {
	a, ok := opposite[p.Face]
	return a, ok
}

// IsFace reports whether token is exactly a face name.
func IsFace(token string) bool {
	for _, f := range Faces {
		if string(f) == token {
			return true
		}
	}
	return false
}
