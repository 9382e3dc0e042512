// Package scene reads YAML scene descriptions and builds models from them.
//
// A scene lists layers, shapes and animations:
//
//	layers:
//	  - name: back
//	    order: -1
//	shapes:
//	  - name: R
//	    type: rectangle
//	    layer: back
//	    color: "#ff0000"
//	    position: [200, 200]
//	    size: [50, 100]
//	    appear: 1
//	    disappear: 100
//	animations:
//	  - shape: R
//	    kind: move
//	    start: 10
//	    end: 50
//	    position: [300, 300]
//
// Colors are either a "#rrggbb" string or an [r, g, b] list in [0,1].
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-g-everett/animtx/model"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a scene entry that is missing a field its kind needs.
var ErrInvalid = errors.New("invalid scene entry")

// Scene is the decoded form of a scene file.
type Scene struct {
	Layers     []Layer     `yaml:"layers"`
	Shapes     []Shape     `yaml:"shapes"`
	Animations []Animation `yaml:"animations"`
}

type Layer struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

type Shape struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Layer     string    `yaml:"layer"`
	Color     Color     `yaml:"color"`
	Position  Point     `yaml:"position"`
	Size      []float64 `yaml:"size"`
	Rotation  float64   `yaml:"rotation"`
	Appear    int       `yaml:"appear"`
	Disappear int       `yaml:"disappear"`
}

// Animation carries the end value matching its kind: position for move,
// color for recolor, size for resize and degrees for rotate.
type Animation struct {
	Shape    string    `yaml:"shape"`
	Kind     string    `yaml:"kind"`
	Start    int       `yaml:"start"`
	End      int       `yaml:"end"`
	Position *Point    `yaml:"position"`
	Color    *Color    `yaml:"color"`
	Size     []float64 `yaml:"size"`
	Degrees  *float64  `yaml:"degrees"`
}

// Color decodes from a hex string or an [r, g, b] list.
type Color model.Color

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := model.ColorFromHex(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: color %q: %w", value.Line, value.Value, err)
		}
		*c = Color(parsed)
		return nil
	case yaml.SequenceNode:
		var rgb []float64
		if err := value.Decode(&rgb); err != nil {
			return err
		}
		if len(rgb) != 3 {
			return fmt.Errorf("line %d: color needs 3 components, got %d", value.Line, len(rgb))
		}
		*c = Color(model.NewColor(rgb[0], rgb[1], rgb[2]))
		return nil
	}
	return fmt.Errorf("line %d: color must be a hex string or a list", value.Line)
}

// Point decodes from an [x, y] list.
type Point model.Position

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("line %d: position needs 2 components, got %d", value.Line, len(xy))
	}
	*p = Point{X: xy[0], Y: xy[1]}
	return nil
}

// Decode reads a scene, rejecting unknown keys.
func Decode(r io.Reader) (*Scene, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	s := new(Scene)
	if err := decoder.Decode(s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return s, nil
}

// Build turns the scene into a model. Entries are applied in file order
// and the first failure is returned.
func (s *Scene) Build() (*model.Model, error) {
	b := model.NewBuilder()
	for _, l := range s.Layers {
		b.AddLayer(l.Name, l.Order)
	}

	for _, sh := range s.Shapes {
		typ, err := model.ParseShapeType(sh.Type)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", sh.Name, err)
		}
		b.AddShape(model.ShapeSpec{
			Name:      sh.Name,
			Type:      typ,
			Color:     model.Color(sh.Color),
			Position:  model.Position(sh.Position),
			Size:      model.Size(sh.Size),
			Rotation:  sh.Rotation,
			Appear:    sh.Appear,
			Disappear: sh.Disappear,
		}, sh.Layer)
	}

	for i, a := range s.Animations {
		if err := addAnimation(b, a); err != nil {
			return nil, fmt.Errorf("animation %d on %q: %w", i, a.Shape, err)
		}
	}

	m, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return m, nil
}

func addAnimation(b *model.Builder, a Animation) error {
	kind, err := model.ParseKind(a.Kind)
	if err != nil {
		return err
	}

	switch kind {
	case model.Move:
		if a.Position == nil {
			return fmt.Errorf("%w: move needs a position", ErrInvalid)
		}
		b.AddMove(a.Shape, model.Position(*a.Position), a.Start, a.End)
	case model.Recolor:
		if a.Color == nil {
			return fmt.Errorf("%w: recolor needs a color", ErrInvalid)
		}
		b.AddColorChange(a.Shape, model.Color(*a.Color), a.Start, a.End)
	case model.Resize:
		if len(a.Size) == 0 {
			return fmt.Errorf("%w: resize needs a size", ErrInvalid)
		}
		b.AddScaleChange(a.Shape, model.Size(a.Size), a.Start, a.End)
	case model.Rotate:
		if a.Degrees == nil {
			return fmt.Errorf("%w: rotate needs degrees", ErrInvalid)
		}
		b.AddRotation(a.Shape, *a.Degrees, a.Start, a.End)
	default:
		return fmt.Errorf("%w: %s is derived from the shape lifetime", model.ErrUnsupportedKind, kind)
	}
	return nil
}

// Load decodes and builds a scene.
func Load(r io.Reader) (*model.Model, error) {
	s, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return s.Build()
}

// LoadFile decodes and builds the scene stored at path.
func LoadFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
