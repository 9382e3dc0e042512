package view

import (
	"fmt"
	"html"
	"strings"

	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/util"
)

const (
	canvasWidth  = 1000
	canvasHeight = 1000
)

var num = util.FormatDouble

func rgb(c model.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}

func points(verts []model.Position) string {
	parts := make([]string, len(verts))
	for i, v := range verts {
		parts[i] = num(v.X) + "," + num(v.Y)
	}
	return strings.Join(parts, " ")
}

// SVG renders the model as a standalone SVG document. Every shape starts
// hidden and is shown between its appear and disappear ticks; moves are
// expressed as motion relative to the initial position.
func SVG(m *model.Model, tempo float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg width=\"%d\" height=\"%d\" version=\"1.1\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		canvasWidth, canvasHeight)

	anims := m.Animations()
	for _, s := range byLayer(m) {
		writeShapeSVG(&sb, m, s, anims, tempo)
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func writeShapeSVG(sb *strings.Builder, m *model.Model, s *model.Shape, anims []*model.Animation, tempo float64) {
	pos, size := s.InitialPosition(), s.InitialSize()
	id := html.EscapeString(s.Name())
	fill := rgb(s.InitialColor())

	transform := ""
	if r := s.InitialRotation(); r != 0 {
		c := model.CalcShapeCenter(s.Type(), pos, size)
		transform = fmt.Sprintf(" transform=\"rotate(%s %s %s)\"", num(r), num(c.X), num(c.Y))
	}

	var tag string
	switch s.Type() {
	case model.Rectangle, model.Square:
		tag = "rect"
		w, h := size[0], size[0]
		if s.Type() == model.Rectangle {
			h = size[1]
		}
		fmt.Fprintf(sb, "<rect id=\"%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" fill=\"%s\" visibility=\"hidden\"%s>\n",
			id, num(pos.X), num(pos.Y), num(w), num(h), fill, transform)
	case model.Oval:
		tag = "ellipse"
		fmt.Fprintf(sb, "<ellipse id=\"%s\" cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\" fill=\"%s\" visibility=\"hidden\"%s>\n",
			id, num(pos.X), num(pos.Y), num(size[0]), num(size[1]), fill, transform)
	case model.Circle:
		tag = "circle"
		fmt.Fprintf(sb, "<circle id=\"%s\" cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\" visibility=\"hidden\"%s>\n",
			id, num(pos.X), num(pos.Y), num(size[0]), fill, transform)
	default:
		tag = "polygon"
		fmt.Fprintf(sb, "<polygon id=\"%s\" points=\"%s\" fill=\"%s\" visibility=\"hidden\"%s>\n",
			id, points(model.PolygonVertices(pos, size)), fill, transform)
	}

	for _, a := range anims {
		if a.Shape() == s {
			writeAnimationSVG(sb, m, a, tempo)
		}
	}
	fmt.Fprintf(sb, "</%s>\n", tag)
}

func writeAnimationSVG(sb *strings.Builder, m *model.Model, a *model.Animation, tempo float64) {
	s := a.Shape()
	from, to := a.From(), a.To()
	timing := fmt.Sprintf("begin=\"%s\" dur=\"%s\" fill=\"freeze\"",
		seconds(a.Time1(), tempo), seconds(a.Time2()-a.Time1(), tempo))

	switch a.Kind() {
	case model.Appear:
		fmt.Fprintf(sb, "<set attributeName=\"visibility\" attributeType=\"CSS\" to=\"visible\" begin=\"%s\" fill=\"freeze\" />\n",
			seconds(a.Time1(), tempo))
	case model.Disappear:
		fmt.Fprintf(sb, "<set attributeName=\"visibility\" attributeType=\"CSS\" to=\"hidden\" begin=\"%s\" fill=\"freeze\" />\n",
			seconds(a.Time1(), tempo))
	case model.Move:
		origin := s.InitialPosition()
		fmt.Fprintf(sb, "<animateMotion path=\"M %s %s L %s %s\" %s />\n",
			num(from.Position.X-origin.X), num(from.Position.Y-origin.Y),
			num(to.Position.X-origin.X), num(to.Position.Y-origin.Y), timing)
	case model.Recolor:
		fmt.Fprintf(sb, "<animate attributeName=\"fill\" attributeType=\"CSS\" from=\"%s\" to=\"%s\" %s />\n",
			rgb(from.Color), rgb(to.Color), timing)
	case model.Resize:
		writeResizeSVG(sb, s, from.Size, to.Size, timing)
	case model.Rotate:
		begin, _ := m.Bounds(a)
		c := model.CalcShapeCenter(s.Type(), s.InitialPosition(), begin.Size)
		fmt.Fprintf(sb, "<animateTransform attributeName=\"transform\" attributeType=\"XML\" type=\"rotate\" from=\"%s %s %s\" to=\"%s %s %s\" %s />\n",
			num(from.Rotation), num(c.X), num(c.Y), num(to.Rotation), num(c.X), num(c.Y), timing)
	}
}

func writeResizeSVG(sb *strings.Builder, s *model.Shape, from, to model.Size, timing string) {
	attr := func(name string, a, b float64) {
		fmt.Fprintf(sb, "<animate attributeName=\"%s\" attributeType=\"XML\" from=\"%s\" to=\"%s\" %s />\n",
			name, num(a), num(b), timing)
	}

	switch s.Type() {
	case model.Rectangle:
		attr("width", from[0], to[0])
		attr("height", from[1], to[1])
	case model.Square:
		attr("width", from[0], to[0])
		attr("height", from[0], to[0])
	case model.Oval:
		attr("rx", from[0], to[0])
		attr("ry", from[1], to[1])
	case model.Circle:
		attr("r", from[0], to[0])
	case model.Polygon:
		origin := s.InitialPosition()
		fmt.Fprintf(sb, "<animate attributeName=\"points\" attributeType=\"XML\" from=\"%s\" to=\"%s\" %s />\n",
			points(model.PolygonVertices(origin, from)), points(model.PolygonVertices(origin, to)), timing)
	}
}
