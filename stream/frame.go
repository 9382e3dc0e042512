package stream

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/animtx/model"
)

// Frame is the resolved look of every visible shape at one tick, back to
// front.
type Frame struct {
	Tick   int
	Shapes []model.ShapeState
}

// ErrFrameTooLarge is returned when a frame holds more shapes, or a shape
// more size parameters, than the binary layout can count.
var ErrFrameTooLarge = errors.New("frame too large to encode")

// NewFrame creates a new Frame instance.
func NewFrame(tick int, shapes []model.ShapeState) *Frame {
	f := new(Frame)
	f.Tick = tick
	f.Shapes = shapes
	return f
}

func appendFloat32(data []byte, v float64) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
	return append(data, b[:]...)
}

// MarshalBinary converts a Frame into binary data. The layout is the
// tick (uint32) and shape count (uint16), then per shape its type, red,
// green and blue bytes, x, y and rotation as float32, and a size count
// byte followed by that many float32 size parameters. Integers and floats
// are little endian.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Shapes) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d shapes", ErrFrameTooLarge, len(f.Shapes))
	}
	data = make([]byte, 6, 6+len(f.Shapes)*20)
	binary.LittleEndian.PutUint32(data, uint32(f.Tick))
	binary.LittleEndian.PutUint16(data[4:], uint16(len(f.Shapes)))

	for _, s := range f.Shapes {
		if len(s.Size) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: shape %q has %d size parameters",
				ErrFrameTooLarge, s.Shape.Name(), len(s.Size))
		}
		r, g, b := colorful.Color(s.Color).Clamped().RGB255()
		data = append(data, byte(s.Shape.Type()), r, g, b)
		data = appendFloat32(data, s.Position.X)
		data = appendFloat32(data, s.Position.Y)
		data = appendFloat32(data, s.Rotation)
		data = append(data, byte(len(s.Size)))
		for _, v := range s.Size {
			data = appendFloat32(data, v)
		}
	}

	return data, nil
}

func scaled(size model.Size, k float64) model.Size {
	out := make(model.Size, len(size))
	for i, v := range size {
		out[i] = v * k
	}
	return out
}

// InterpolateFrame merges two frames, matching shapes by name. Shapes in
// both frames tween between their states, shapes only in f shrink away and
// shapes only in f2 grow in. Shapes leaving are drawn behind the rest.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	next := make(map[string]bool, len(f2.Shapes))
	for _, s := range f2.Shapes {
		next[s.Shape.Name()] = true
	}
	prev := make(map[string]model.ShapeState, len(f.Shapes))

	shapes := make([]model.ShapeState, 0, len(f.Shapes)+len(f2.Shapes))
	for _, s := range f.Shapes {
		if next[s.Shape.Name()] {
			prev[s.Shape.Name()] = s
			continue
		}
		s.Size = scaled(s.Size, 1-transitionPoint)
		shapes = append(shapes, s)
	}
	for _, s := range f2.Shapes {
		if p, ok := prev[s.Shape.Name()]; ok {
			s.State = p.State.Blend(s.State, transitionPoint)
		} else {
			s.Size = scaled(s.Size, transitionPoint)
		}
		shapes = append(shapes, s)
	}

	return NewFrame(f2.Tick, shapes)
}

type jsonShape struct {
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Color    string    `json:"color"`
	Size     []float64 `json:"size"`
	Rotation float64   `json:"rotation"`
}

type jsonFrame struct {
	Tick   int         `json:"tick"`
	Shapes []jsonShape `json:"shapes"`
}

// MarshalJSON encodes the frame with colours as hex strings.
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := jsonFrame{Tick: f.Tick, Shapes: make([]jsonShape, 0, len(f.Shapes))}
	for _, s := range f.Shapes {
		out.Shapes = append(out.Shapes, jsonShape{
			Name:     s.Shape.Name(),
			Type:     s.Shape.Type().String(),
			X:        s.Position.X,
			Y:        s.Position.Y,
			Color:    colorful.Color(s.Color).Clamped().Hex(),
			Size:     s.Size,
			Rotation: s.Rotation,
		})
	}
	return json.Marshal(out)
}
