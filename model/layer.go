package model

// Layer is a named z-order bucket. Lower orders are drawn first.
type Layer struct {
	name    string
	order   int
	private bool
	shapes  []*Shape
}

func newLayer(name string, order int) *Layer {
	l := new(Layer)
	l.name = name
	l.order = order
	return l
}

func (l *Layer) Name() string { return l.name }
func (l *Layer) Order() int   { return l.order }

// Private reports whether the layer was synthesized for a single shape
// created without a layer name.
func (l *Layer) Private() bool { return l.private }

// Shapes lists the member shapes in the order they joined.
func (l *Layer) Shapes() []*Shape {
	out := make([]*Shape, len(l.shapes))
	copy(out, l.shapes)
	return out
}

func (l *Layer) add(s *Shape) {
	l.shapes = append(l.shapes, s)
}

func (l *Layer) remove(s *Shape) {
	for i, m := range l.shapes {
		if m == s {
			l.shapes = append(l.shapes[:i], l.shapes[i+1:]...)
			return
		}
	}
}
