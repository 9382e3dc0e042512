package model

import (
	"fmt"
	"strconv"

	"github.com/matt-g-everett/animtx/util"
)

// Kind is the attribute an animation changes.
type Kind int

const (
	Move Kind = iota
	Recolor
	Resize
	Rotate
	Appear
	Disappear
	Still
)

var kindNames = [...]string{"move", "recolor", "resize", "rotate", "appear", "disappear", "still"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind maps a lower-case kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown animation kind %q", ErrUnsupportedKind, s)
}

// Tweenable reports whether the kind interpolates an attribute.
func (k Kind) Tweenable() bool {
	return k >= Move && k <= Rotate
}

// Animation changes one attribute of a shape over the ticks [Time1, Time2].
// Only the attribute matching Kind is carried in From and To; the begin
// value is owned by the Model and recomputed from history after every
// structural edit.
type Animation struct {
	kind  Kind
	shape *Shape
	time1 int
	time2 int
	from  State
	to    State
}

// NewMove creates a move animation ending at position to.
func NewMove(shape *Shape, to Position, time1, time2 int) *Animation {
	return &Animation{kind: Move, shape: shape, time1: time1, time2: time2, to: State{Position: to}}
}

// NewRecolor creates a colour change ending at colour to.
func NewRecolor(shape *Shape, to Color, time1, time2 int) *Animation {
	return &Animation{kind: Recolor, shape: shape, time1: time1, time2: time2, to: State{Color: to}}
}

// NewResize creates a size change ending at size to.
func NewResize(shape *Shape, to Size, time1, time2 int) *Animation {
	return &Animation{kind: Resize, shape: shape, time1: time1, time2: time2, to: State{Size: to.Clone()}}
}

// NewRotate creates a rotation ending at the given angle in degrees.
func NewRotate(shape *Shape, degrees float64, time1, time2 int) *Animation {
	return &Animation{kind: Rotate, shape: shape, time1: time1, time2: time2, to: State{Rotation: degrees}}
}

func newMarker(kind Kind, shape *Shape, tick int) *Animation {
	return &Animation{kind: kind, shape: shape, time1: tick, time2: tick}
}

func (a *Animation) Kind() Kind    { return a.kind }
func (a *Animation) Shape() *Shape { return a.shape }
func (a *Animation) Time1() int    { return a.time1 }
func (a *Animation) Time2() int    { return a.time2 }

// From is the begin value. Only the field matching Kind is meaningful.
func (a *Animation) From() State { return a.from.clone() }

// To is the end value. Only the field matching Kind is meaningful.
func (a *Animation) To() State { return a.to.clone() }

// Occupies reports whether the animation is active at tick.
func (a *Animation) Occupies(tick int) bool {
	return a.time1 <= tick && tick <= a.time2
}

func (a *Animation) overlaps(b *Animation) bool {
	return a.time1 <= b.time2 && b.time1 <= a.time2
}

// weight returns the blend weight of the end value at tick.
func (a *Animation) weight(tick int) float64 {
	if a.time2 <= a.time1 || tick >= a.time2 {
		return 1
	}
	if tick <= a.time1 {
		return 0
	}
	return float64(tick-a.time1) / float64(a.time2-a.time1)
}

// apply writes this animation's attribute at tick into s.
func (a *Animation) apply(s *State, tick int) {
	w := a.weight(tick)
	switch a.kind {
	case Move:
		switch w {
		case 0:
			s.Position = a.from.Position
		case 1:
			s.Position = a.to.Position
		default:
			s.Position = a.from.Position.blend(a.to.Position, w)
		}
	case Recolor:
		switch w {
		case 0:
			s.Color = a.from.Color
		case 1:
			s.Color = a.to.Color
		default:
			s.Color = a.from.Color.blend(a.to.Color, w)
		}
	case Resize:
		switch w {
		case 0:
			s.Size = a.from.Size.Clone()
		case 1:
			s.Size = a.to.Size.Clone()
		default:
			s.Size = a.from.Size.blend(a.to.Size, w)
		}
	case Rotate:
		switch w {
		case 0:
			s.Rotation = a.from.Rotation
		case 1:
			s.Rotation = a.to.Rotation
		default:
			s.Rotation = lerp(a.from.Rotation, a.to.Rotation, w)
		}
	}
}

// copyInto returns an animation of the same kind, ticks and end value on
// another shape.
func (a *Animation) copyInto(shape *Shape) *Animation {
	c := &Animation{kind: a.kind, shape: shape, time1: a.time1, time2: a.time2}
	c.to = a.to.clone()
	return c
}

func (a *Animation) String() string {
	name := "Shape " + a.shape.name
	span := fmt.Sprintf(" from t=%d to t=%d", a.time1, a.time2)
	switch a.kind {
	case Move:
		return name + " moves from " + a.from.Position.String() + " to " + a.to.Position.String() + span
	case Recolor:
		return name + " changes color from " + a.from.Color.String() + " to " + a.to.Color.String() + span
	case Resize:
		return name + " scales from " + a.shape.shapeType.SizeString(a.from.Size) + " to " +
			a.shape.shapeType.SizeString(a.to.Size) + span
	case Rotate:
		return name + " rotates from " + util.FormatNumber(a.from.Rotation) + " degrees to " +
			util.FormatNumber(a.to.Rotation) + " degrees" + span
	case Appear:
		return fmt.Sprintf("%s appears at t=%d", name, a.time1)
	case Disappear:
		return fmt.Sprintf("%s disappears at t=%d", name, a.time1)
	default:
		return fmt.Sprintf("%s is still at t=%d", name, a.time1)
	}
}

func (s State) clone() State {
	s.Size = s.Size.Clone()
	return s
}
