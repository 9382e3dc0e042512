// Package model holds shapes, layers and the keyframe timeline that
// animates them, and resolves the visual state of every shape at any tick.
package model

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/animtx/util"
)

const epsilon = 0.01

func near(a, b float64) bool {
	d := a - b
	return d < epsilon && d > -epsilon
}

// Position is a point on the canvas.
type Position struct {
	X float64
	Y float64
}

// Equal compares positions within a hundredth.
func (p Position) Equal(o Position) bool {
	return near(p.X, o.X) && near(p.Y, o.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%s, %s)", util.FormatTenths(p.X), util.FormatTenths(p.Y))
}

func (p Position) blend(to Position, w float64) Position {
	return Position{lerp(p.X, to.X, w), lerp(p.Y, to.Y, w)}
}

// Color is an RGB colour with components in [0,1].
type Color colorful.Color

// NewColor creates a Color from its components.
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses a "#rrggbb" string.
func ColorFromHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color(c), nil
}

// Equal compares colours within a hundredth per channel.
func (c Color) Equal(o Color) bool {
	return near(c.R, o.R) && near(c.G, o.G) && near(c.B, o.B)
}

func (c Color) String() string {
	return fmt.Sprintf("(%s, %s, %s)", util.FormatTenths(c.R), util.FormatTenths(c.G),
		util.FormatTenths(c.B))
}

// RGB255 truncates each channel to an integer in [0,255].
func (c Color) RGB255() (r, g, b int) {
	cl := colorful.Color(c).Clamped()
	return int(cl.R * 255), int(cl.G * 255), int(cl.B * 255)
}

func (c Color) valid() bool {
	return colorful.Color(c).IsValid()
}

func (c Color) blend(to Color, w float64) Color {
	return Color(colorful.Color(c).BlendRgb(colorful.Color(to), w))
}

// Size is the ordered list of size parameters of a shape. Its meaning
// depends on the shape type.
type Size []float64

// Equal compares sizes parameter by parameter within a hundredth.
func (s Size) Equal(o Size) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !near(s[i], o[i]) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s Size) Clone() Size {
	if s == nil {
		return nil
	}
	out := make(Size, len(s))
	copy(out, s)
	return out
}

func (s Size) blend(to Size, w float64) Size {
	out := make(Size, len(s))
	for i := range s {
		if i < len(to) {
			out[i] = lerp(s[i], to[i], w)
		} else {
			out[i] = s[i]
		}
	}
	return out
}

// State is the fully resolved look of a shape at one tick.
type State struct {
	Position Position
	Color    Color
	Size     Size
	Rotation float64
}

// Blend tweens every attribute of s towards to by weight w in [0,1].
func (s State) Blend(to State, w float64) State {
	return State{
		Position: s.Position.blend(to.Position, w),
		Color:    s.Color.blend(to.Color, w),
		Size:     s.Size.blend(to.Size, w),
		Rotation: lerp(s.Rotation, to.Rotation, w),
	}
}

func lerp(a, b, w float64) float64 {
	return a*(1-w) + b*w
}
