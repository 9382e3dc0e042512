package view

import (
	"fmt"
	"strings"

	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/util"
)

// Text describes every shape and then every animation with times in
// seconds at the given tempo.
func Text(m *model.Model, tempo float64) string {
	var sb strings.Builder
	sb.WriteString("Shapes:\n")
	for _, s := range m.Shapes() {
		writeShapeText(&sb, s, tempo)
		sb.WriteString("\n\n")
	}

	for _, a := range m.Animations() {
		if a.Kind() == model.Appear || a.Kind() == model.Disappear {
			continue
		}
		writeAnimationText(&sb, a, tempo)
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeShapeText(sb *strings.Builder, s *model.Shape, tempo float64) {
	fmt.Fprintf(sb, "Name: %s\nType: %s\n%s: %s, %s, Color: %s\nAppears at t=%s\nDisappears at t=%s",
		s.Name(), s.Type(), s.RefPoint(), s.InitialPosition(), s.Type().SizeString(s.InitialSize()),
		s.InitialColor(), seconds(s.AppearTick(), tempo), seconds(s.DisappearTick(), tempo))
}

func writeAnimationText(sb *strings.Builder, a *model.Animation, tempo float64) {
	s := a.Shape()
	from, to := a.From(), a.To()

	sb.WriteString("Shape " + s.Name())
	switch a.Kind() {
	case model.Move:
		fmt.Fprintf(sb, " moves from %s to %s", from.Position, to.Position)
	case model.Recolor:
		fmt.Fprintf(sb, " changes color from %s to %s", from.Color, to.Color)
	case model.Resize:
		fmt.Fprintf(sb, " scales from %s to %s", s.Type().SizeString(from.Size), s.Type().SizeString(to.Size))
	case model.Rotate:
		fmt.Fprintf(sb, " rotates from %s degrees to %s degrees",
			util.FormatDouble(from.Rotation), util.FormatDouble(to.Rotation))
	default:
		fmt.Fprintf(sb, " is still at t=%s", seconds(a.Time1(), tempo))
		return
	}
	fmt.Fprintf(sb, " from t=%s to t=%s", seconds(a.Time1(), tempo), seconds(a.Time2(), tempo))
}
