package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matt-g-everett/animtx/util"
)

// ShapeType is the kind of geometry a shape draws.
type ShapeType int

const (
	Rectangle ShapeType = iota
	Square
	Oval
	Circle
	Polygon
)

var shapeTypeNames = [...]string{"rectangle", "square", "oval", "circle", "polygon"}

func (t ShapeType) String() string {
	if t < 0 || int(t) >= len(shapeTypeNames) {
		return "ShapeType(" + strconv.Itoa(int(t)) + ")"
	}
	return shapeTypeNames[t]
}

// ParseShapeType maps a lower-case type name to a ShapeType.
func ParseShapeType(s string) (ShapeType, error) {
	for i, name := range shapeTypeNames {
		if name == s {
			return ShapeType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape type %q", ErrGeometry, s)
}

// RefPoint is the anchor a shape's position refers to.
type RefPoint int

const (
	MinCorner RefPoint = iota
	Center
)

func (r RefPoint) String() string {
	if r == MinCorner {
		return "Min-corner"
	}
	return "Center"
}

// RefPoint derives the anchor from the shape type.
func (t ShapeType) RefPoint() RefPoint {
	if t == Rectangle || t == Square {
		return MinCorner
	}
	return Center
}

// ValidateSize checks the parameter count and, for polygons, that every
// side is strictly shorter than the sum of the others.
func (t ShapeType) ValidateSize(size Size) error {
	for i, v := range size {
		if v <= 0 {
			return fmt.Errorf("%w: %s size parameter %d is %v, must be positive", ErrGeometry, t, i+1, v)
		}
	}

	n := len(size)
	switch t {
	case Rectangle, Oval:
		if n != 2 {
			return fmt.Errorf("%w: %s needs 2 size parameters, got %d", ErrGeometry, t, n)
		}
	case Square, Circle:
		if n != 1 {
			return fmt.Errorf("%w: %s needs 1 size parameter, got %d", ErrGeometry, t, n)
		}
	case Polygon:
		if n <= 2 {
			return fmt.Errorf("%w: polygon needs more than 2 sides, got %d", ErrGeometry, n)
		}
		var total float64
		for _, side := range size {
			total += side
		}
		for i, side := range size {
			if side >= total-side {
				return fmt.Errorf("%w: polygon side %d (%v) is not shorter than the sum of the others (%v)",
					ErrGeometry, i+1, side, total-side)
			}
		}
	default:
		return fmt.Errorf("%w: unknown shape type %d", ErrGeometry, int(t))
	}
	return nil
}

// SizeString describes size parameters in the wording of the shape type.
func (t ShapeType) SizeString(size Size) string {
	p := func(i int) string {
		if i < len(size) {
			return util.FormatDouble(size[i])
		}
		return "?"
	}

	switch t {
	case Rectangle:
		return "Width: " + p(0) + ", Height: " + p(1)
	case Square:
		return "Side length: " + p(0)
	case Oval:
		return "X radius: " + p(0) + ", Y radius: " + p(1)
	case Circle:
		return "Radius: " + p(0)
	default:
		var sb strings.Builder
		for i := range size {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "Side %d length: %s", i+1, p(i))
		}
		return sb.String()
	}
}

// ShapeSpec carries the static attributes of a shape to create.
type ShapeSpec struct {
	Name      string
	Type      ShapeType
	Color     Color
	Position  Position
	Size      Size
	Rotation  float64
	Appear    int
	Disappear int
}

// Shape is a named shape with immutable initial attributes. The layer it
// belongs to is tracked by the owning Model.
type Shape struct {
	name      string
	shapeType ShapeType
	color     Color
	position  Position
	size      Size
	rotation  float64
	appear    int
	disappear int
}

func newShape(spec ShapeSpec) (*Shape, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: shape name is empty", ErrGeometry)
	}
	if err := spec.Type.ValidateSize(spec.Size); err != nil {
		return nil, fmt.Errorf("shape %q: %w", spec.Name, err)
	}
	if !spec.Color.valid() {
		return nil, fmt.Errorf("%w: shape %q color %v outside [0,1]", ErrGeometry, spec.Name, spec.Color)
	}
	if spec.Appear < 0 || spec.Appear > spec.Disappear {
		return nil, fmt.Errorf("%w: shape %q lifetime [%d,%d]", ErrTemporal, spec.Name, spec.Appear, spec.Disappear)
	}

	s := new(Shape)
	s.name = spec.Name
	s.shapeType = spec.Type
	s.color = spec.Color
	s.position = spec.Position
	s.size = spec.Size.Clone()
	s.rotation = spec.Rotation
	s.appear = spec.Appear
	s.disappear = spec.Disappear
	return s, nil
}

func (s *Shape) Name() string              { return s.name }
func (s *Shape) Type() ShapeType           { return s.shapeType }
func (s *Shape) RefPoint() RefPoint        { return s.shapeType.RefPoint() }
func (s *Shape) InitialColor() Color       { return s.color }
func (s *Shape) InitialPosition() Position { return s.position }
func (s *Shape) InitialSize() Size         { return s.size.Clone() }
func (s *Shape) InitialRotation() float64  { return s.rotation }
func (s *Shape) AppearTick() int           { return s.appear }
func (s *Shape) DisappearTick() int        { return s.disappear }

// Spec returns the attributes the shape was created from.
func (s *Shape) Spec() ShapeSpec {
	return ShapeSpec{
		Name:      s.name,
		Type:      s.shapeType,
		Color:     s.color,
		Position:  s.position,
		Size:      s.size.Clone(),
		Rotation:  s.rotation,
		Appear:    s.appear,
		Disappear: s.disappear,
	}
}

// InitialState is the look of the shape before any animation applies.
func (s *Shape) InitialState() State {
	return State{Position: s.position, Color: s.color, Size: s.size.Clone(), Rotation: s.rotation}
}

// Alive reports whether tick falls inside the shape's lifetime.
func (s *Shape) Alive(tick int) bool {
	return s.appear <= tick && tick <= s.disappear
}

func (s *Shape) String() string {
	return fmt.Sprintf("Name: %s\nType: %s\n%s: %s, %s, Color: %s\nAppears at t=%d\nDisappears at t=%d",
		s.name, s.shapeType, s.RefPoint(), s.position, s.shapeType.SizeString(s.size), s.color,
		s.appear, s.disappear)
}
