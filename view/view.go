// Package view renders a model as a text summary or an SVG document.
// Both formats are built only from the model's public accessors.
package view

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/util"
)

// ErrTempo is returned for a tempo that is not a positive number of ticks
// per second.
var ErrTempo = errors.New("tempo must be positive")

// Format selects a renderer.
type Format int

const (
	TextFormat Format = iota
	SVGFormat
)

func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case SVGFormat:
		return "svg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat maps a command line view name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text":
		return TextFormat, nil
	case "svg":
		return SVGFormat, nil
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

// Render writes m to w in format f. tempo is in ticks per second.
func Render(w io.Writer, f Format, m *model.Model, tempo float64) error {
	if tempo <= 0 {
		return fmt.Errorf("%w: %v", ErrTempo, tempo)
	}

	var out string
	switch f {
	case TextFormat:
		out = Text(m, tempo)
	case SVGFormat:
		out = SVG(m, tempo)
	default:
		return fmt.Errorf("unknown view %v", f)
	}

	_, err := io.WriteString(w, out)
	return err
}

func seconds(tick int, tempo float64) string {
	return util.FormatDouble(util.Seconds(tick, tempo)) + "s"
}

// byLayer orders shapes back to front, keeping creation order within a
// layer.
func byLayer(m *model.Model) []*model.Shape {
	shapes := m.Shapes()
	order := func(s *model.Shape) int {
		if l := m.LayerOf(s); l != nil {
			return l.Order()
		}
		return 0
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return order(shapes[i]) < order(shapes[j])
	})
	return shapes
}
