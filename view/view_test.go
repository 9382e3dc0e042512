package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matt-g-everett/animtx/model"
)

func roundTripModel(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.NewBuilder().
		AddShape(model.ShapeSpec{Name: "R", Type: model.Rectangle, Color: model.NewColor(1, 0, 0),
			Position: model.Position{X: 200, Y: 200}, Size: model.Size{50, 100}, Appear: 0, Disappear: 50}, "").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return m
}

func TestTextRoundTrip(t *testing.T) {
	m := roundTripModel(t)

	want := "Shapes:\n" +
		"Name: R\n" +
		"Type: rectangle\n" +
		"Min-corner: (200.0, 200.0), Width: 50.0, Height: 100.0, Color: (1.0, 0.0, 0.0)\n" +
		"Appears at t=0.0s\n" +
		"Disappears at t=25.0s\n" +
		"\n"
	if got := Text(m, 2); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTextAnimations(t *testing.T) {
	m, err := model.NewBuilder().
		AddShape(model.ShapeSpec{Name: "R", Type: model.Rectangle, Color: model.NewColor(1, 0, 0),
			Position: model.Position{X: 200, Y: 200}, Size: model.Size{50, 100}, Appear: 1, Disappear: 100}, "").
		AddShape(model.ShapeSpec{Name: "C", Type: model.Oval, Color: model.NewColor(0, 0, 1),
			Position: model.Position{X: 500, Y: 100}, Size: model.Size{60, 30}, Appear: 6, Disappear: 100}, "").
		AddMove("R", model.Position{X: 300, Y: 300}, 10, 50).
		AddColorChange("C", model.NewColor(0, 1, 0), 50, 80).
		AddScaleChange("R", model.Size{25, 100}, 51, 70).
		AddRotation("C", 90, 80, 95).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := Text(m, 20)
	wantLines := []string{
		"Appears at t=0.05s",
		"Disappears at t=5.0s",
		"Center: (500.0, 100.0), X radius: 60.0, Y radius: 30.0, Color: (0.0, 0.0, 1.0)",
		"Shape R moves from (200.0, 200.0) to (300.0, 300.0) from t=0.5s to t=2.5s\n",
		"Shape C changes color from (0.0, 0.0, 1.0) to (0.0, 1.0, 0.0) from t=2.5s to t=4.0s\n",
		"Shape R scales from Width: 50.0, Height: 100.0 to Width: 25.0, Height: 100.0 from t=2.55s to t=3.5s\n",
		"Shape C rotates from 0.0 degrees to 90.0 degrees from t=4.0s to t=4.75s\n",
	}
	for _, want := range wantLines {
		if !strings.Contains(got, want) {
			t.Errorf("Text() missing %q in:\n%s", want, got)
		}
	}

	if i, j := strings.Index(got, "moves"), strings.Index(got, "changes color"); i > j {
		t.Errorf("animations out of chronological order:\n%s", got)
	}
	if strings.Contains(got, "appears at") || strings.Contains(got, "disappears at") {
		t.Errorf("Text() lists appear or disappear markers:\n%s", got)
	}
}

func TestSVG(t *testing.T) {
	m, err := model.NewBuilder().
		AddLayer("back", -1).
		AddShape(model.ShapeSpec{Name: "R", Type: model.Rectangle, Color: model.NewColor(1, 0.5, 0),
			Position: model.Position{X: 200, Y: 200}, Size: model.Size{50, 100}, Appear: 10, Disappear: 50}, "").
		AddShape(model.ShapeSpec{Name: "P", Type: model.Polygon, Color: model.NewColor(0, 0, 1),
			Position: model.Position{X: 100, Y: 100}, Size: model.Size{50, 50, 50}, Appear: 0, Disappear: 50}, "back").
		AddMove("R", model.Position{X: 300, Y: 250}, 10, 30).
		AddRotation("R", 90, 30, 40).
		AddScaleChange("P", model.Size{20, 20, 20}, 0, 10).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got := SVG(m, 10)
	wants := []string{
		`<rect id="R" x="200.0" y="200.0" width="50.0" height="100.0" fill="rgb(255,127,0)" visibility="hidden">`,
		`<set attributeName="visibility" attributeType="CSS" to="visible" begin="1.0s" fill="freeze" />`,
		`<set attributeName="visibility" attributeType="CSS" to="hidden" begin="5.0s" fill="freeze" />`,
		`<animateMotion path="M 0.0 0.0 L 100.0 50.0" begin="1.0s" dur="2.0s" fill="freeze" />`,
		`<animateTransform attributeName="transform" attributeType="XML" type="rotate" from="0.0 225.0 250.0" to="90.0 225.0 250.0" begin="3.0s" dur="1.0s" fill="freeze" />`,
		`<polygon id="P" points="`,
		`<animate attributeName="points" attributeType="XML" from="`,
		"</rect>\n",
		"</polygon>\n",
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("SVG() missing %q in:\n%s", want, got)
		}
	}

	if !strings.HasPrefix(got, "<svg ") || !strings.HasSuffix(got, "</svg>\n") {
		t.Errorf("SVG() is not a single svg element:\n%s", got)
	}
	// P sits on a lower layer so it is painted first.
	if strings.Index(got, "<polygon") > strings.Index(got, "<rect") {
		t.Errorf("SVG() paints R before P:\n%s", got)
	}
}

func TestSVGColorTruncates(t *testing.T) {
	if got := rgb(model.NewColor(0.5, 1, 0.999)); got != "rgb(127,255,254)" {
		t.Errorf("rgb() = %q, want rgb(127,255,254)", got)
	}
}

func TestRender(t *testing.T) {
	m := roundTripModel(t)

	var buf bytes.Buffer
	if err := Render(&buf, TextFormat, m, 2); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != Text(m, 2) {
		t.Errorf("Render(text) = %q, want Text()", buf.String())
	}

	if err := Render(&buf, SVGFormat, m, 0); !errors.Is(err, ErrTempo) {
		t.Errorf("Render(tempo 0) error = %v, want ErrTempo", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", TextFormat, false},
		{"svg", SVGFormat, false},
		{"visual", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
