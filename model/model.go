package model

import (
	"fmt"
	"sort"
	"strings"
)

// Model owns shapes, layers and the timeline animating them.
//
// A Model is not safe for concurrent use. Mutations run to completion,
// including the recomputation of begin values, before they return; callers
// sharing a Model between goroutines must serialize access themselves.
type Model struct {
	shapes  []*Shape
	layers  []*Layer
	layerOf map[*Shape]*Layer
	tl      timeline
}

// ShapeState pairs a shape with its resolved look at one tick.
type ShapeState struct {
	Shape *Shape
	State
}

// New creates an empty Model.
func New() *Model {
	m := new(Model)
	m.layerOf = make(map[*Shape]*Layer)
	return m
}

func (m *Model) orderOf(s *Shape) int {
	if l, ok := m.layerOf[s]; ok {
		return l.order
	}
	return 0
}

func (m *Model) owns(s *Shape) bool {
	if s == nil {
		return false
	}
	_, ok := m.layerOf[s]
	return ok
}

func (m *Model) sortLayers() {
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].order < m.layers[j].order
	})
}

// AddLayer creates a named layer. Lower orders are drawn first.
func (m *Model) AddLayer(name string, order int) error {
	if name == "" {
		return fmt.Errorf("%w: layer name is empty", ErrDuplicate)
	}
	if m.Layer(name) != nil {
		return fmt.Errorf("%w: layer %q", ErrDuplicate, name)
	}
	m.layers = append(m.layers, newLayer(name, order))
	m.sortLayers()
	return nil
}

// Layer looks up a named layer, or returns nil.
func (m *Model) Layer(name string) *Layer {
	for _, l := range m.layers {
		if !l.private && l.name == name {
			return l
		}
	}
	return nil
}

// Layers lists the named layers ascending by order.
func (m *Model) Layers() []*Layer {
	var out []*Layer
	for _, l := range m.layers {
		if !l.private {
			out = append(out, l)
		}
	}
	return out
}

// LayerOf returns the layer s is assigned to, or nil if s is not part of
// the model.
func (m *Model) LayerOf(s *Shape) *Layer {
	return m.layerOf[s]
}

// SetShapeLayer moves the named shape into the named layer and restacks
// the timeline buckets it appears in.
func (m *Model) SetShapeLayer(shapeName, layerName string) error {
	s := m.ShapeByName(shapeName)
	if s == nil {
		return fmt.Errorf("%w: shape %q", ErrNotFound, shapeName)
	}
	l := m.Layer(layerName)
	if l == nil {
		return fmt.Errorf("%w: layer %q", ErrNotFound, layerName)
	}

	m.detachLayer(s)
	l.add(s)
	m.layerOf[s] = l
	m.tl.restack(s, m.orderOf)
	return nil
}

func (m *Model) detachLayer(s *Shape) {
	old, ok := m.layerOf[s]
	if !ok {
		return
	}
	old.remove(s)
	if old.private {
		m.dropLayer(old)
	}
	delete(m.layerOf, s)
}

func (m *Model) dropLayer(layer *Layer) {
	for i, l := range m.layers {
		if l == layer {
			m.layers = append(m.layers[:i], m.layers[i+1:]...)
			return
		}
	}
}

// CreateShape adds a shape on its own private layer of order 0 and seeds
// the timeline with its appear, disappear and still frames.
func (m *Model) CreateShape(spec ShapeSpec) (*Shape, error) {
	return m.createShape(spec, nil)
}

// CreateShapeInLayer adds a shape to an existing named layer.
func (m *Model) CreateShapeInLayer(spec ShapeSpec, layer string) (*Shape, error) {
	l := m.Layer(layer)
	if l == nil {
		return nil, fmt.Errorf("%w: layer %q", ErrNotFound, layer)
	}
	return m.createShape(spec, l)
}

func (m *Model) createShape(spec ShapeSpec, l *Layer) (*Shape, error) {
	if m.ShapeByName(spec.Name) != nil {
		return nil, fmt.Errorf("%w: shape %q", ErrDuplicate, spec.Name)
	}
	s, err := newShape(spec)
	if err != nil {
		return nil, err
	}

	if l == nil {
		l = newLayer("", 0)
		l.private = true
		m.layers = append(m.layers, l)
		m.sortLayers()
	}
	l.add(s)
	m.layerOf[s] = l
	m.shapes = append(m.shapes, s)

	m.tl.grow(s.disappear)
	appear := newMarker(Appear, s, s.appear)
	disappear := newMarker(Disappear, s, s.disappear)
	m.tl.addToBucket(s.appear, appear, m.orderOf)
	m.tl.addToBucket(s.disappear, disappear, m.orderOf)
	for tick := s.appear + 1; tick < s.disappear; tick++ {
		m.tl.addToBucket(tick, newMarker(Still, s, tick), m.orderOf)
	}
	m.tl.addChronological(appear)
	m.tl.addChronological(disappear)
	return s, nil
}

// Shape returns the shape at index in creation order.
func (m *Model) Shape(index int) (*Shape, error) {
	if index < 0 || index >= len(m.shapes) {
		return nil, fmt.Errorf("%w: shape index %d of %d", ErrNotFound, index, len(m.shapes))
	}
	return m.shapes[index], nil
}

// ShapeByName looks up a shape, or returns nil.
func (m *Model) ShapeByName(name string) *Shape {
	for _, s := range m.shapes {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Shapes lists the shapes in creation order.
func (m *Model) Shapes() []*Shape {
	out := make([]*Shape, len(m.shapes))
	copy(out, m.shapes)
	return out
}

// Animations lists every animation ascending by start tick, appear and
// disappear markers included.
func (m *Model) Animations() []*Animation {
	out := make([]*Animation, len(m.tl.animations))
	copy(out, m.tl.animations)
	return out
}

// Timeline returns one bucket per tick, each in back-to-front order.
func (m *Model) Timeline() [][]*Animation {
	out := make([][]*Animation, len(m.tl.buckets))
	for i, b := range m.tl.buckets {
		out[i] = make([]*Animation, len(b))
		copy(out[i], b)
	}
	return out
}

// Duration is the number of ticks the timeline covers.
func (m *Model) Duration() int {
	return len(m.tl.buckets)
}

// MoveShape moves s to position to over [time1, time2].
func (m *Model) MoveShape(s *Shape, to Position, time1, time2 int) (*Animation, error) {
	a := NewMove(s, to, time1, time2)
	return a, m.AddAnimation(a)
}

// ChangeShapeColor recolours s to to over [time1, time2].
func (m *Model) ChangeShapeColor(s *Shape, to Color, time1, time2 int) (*Animation, error) {
	a := NewRecolor(s, to, time1, time2)
	return a, m.AddAnimation(a)
}

// ChangeShapeSize resizes s to to over [time1, time2].
func (m *Model) ChangeShapeSize(s *Shape, to Size, time1, time2 int) (*Animation, error) {
	a := NewResize(s, to, time1, time2)
	return a, m.AddAnimation(a)
}

// RotateShape turns s to degrees over [time1, time2].
func (m *Model) RotateShape(s *Shape, degrees float64, time1, time2 int) (*Animation, error) {
	a := NewRotate(s, degrees, time1, time2)
	return a, m.AddAnimation(a)
}

// AddAnimation validates a and inserts it into the timeline. The begin
// value is taken from the shape's history; only the end value of a is
// used. On error the model is unchanged.
func (m *Model) AddAnimation(a *Animation) error {
	if err := m.validate(a); err != nil {
		return err
	}

	switch a.kind {
	case Move:
		a.from.Position = m.CalcCurrentPosition(a.shape, a.time1)
	case Recolor:
		a.from.Color = m.CalcCurrentColor(a.shape, a.time1)
	case Resize:
		a.from.Size = m.CalcCurrentSize(a.shape, a.time1)
	case Rotate:
		a.from.Rotation = m.CalcCurrentRotation(a.shape, a.time1)
	}

	m.tl.insert(a, m.orderOf)
	m.tl.recompute()
	return nil
}

func (m *Model) validate(a *Animation) error {
	if a == nil {
		return fmt.Errorf("%w: nil animation", ErrNotFound)
	}
	if !a.kind.Tweenable() {
		return fmt.Errorf("%w: %s cannot be added directly", ErrUnsupportedKind, a.kind)
	}
	if !m.owns(a.shape) {
		return fmt.Errorf("%w: animation shape is not part of this model", ErrNotFound)
	}

	s := a.shape
	if a.time1 > a.time2 {
		return fmt.Errorf("%w: %s on shape %q starts at t=%d after it ends at t=%d",
			ErrTemporal, a.kind, s.name, a.time1, a.time2)
	}
	if a.time1 < s.appear || a.time2 > s.disappear {
		return fmt.Errorf("%w: %s on shape %q over [%d,%d] outside lifetime [%d,%d]",
			ErrTemporal, a.kind, s.name, a.time1, a.time2, s.appear, s.disappear)
	}

	switch a.kind {
	case Resize:
		if err := s.shapeType.ValidateSize(a.to.Size); err != nil {
			return fmt.Errorf("resize of shape %q: %w", s.name, err)
		}
	case Recolor:
		if !a.to.Color.valid() {
			return fmt.Errorf("%w: recolor of shape %q to %v outside [0,1]", ErrGeometry, s.name, a.to.Color)
		}
	}

	return m.tl.checkOverlap(a)
}

// RemoveAnimation removes the animation of kind on s that occupies tick.
func (m *Model) RemoveAnimation(s *Shape, kind Kind, tick int) error {
	if !kind.Tweenable() {
		return fmt.Errorf("%w: %s cannot be removed directly", ErrUnsupportedKind, kind)
	}
	if !m.owns(s) {
		return fmt.Errorf("%w: shape is not part of this model", ErrNotFound)
	}
	a := m.tl.find(s, kind, tick)
	if a == nil {
		return fmt.Errorf("%w: no %s on shape %q at t=%d", ErrNotFound, kind, s.name, tick)
	}

	m.tl.remove(a, m.orderOf)
	m.tl.recompute()
	return nil
}

// RemoveShape removes the shape at index together with every animation
// referencing it.
func (m *Model) RemoveShape(index int) error {
	s, err := m.Shape(index)
	if err != nil {
		return err
	}
	m.removeShape(index, s)
	return nil
}

// RemoveShapeByName removes the named shape together with every animation
// referencing it.
func (m *Model) RemoveShapeByName(name string) error {
	for i, s := range m.shapes {
		if s.name == name {
			m.removeShape(i, s)
			return nil
		}
	}
	return fmt.Errorf("%w: shape %q", ErrNotFound, name)
}

func (m *Model) removeShape(index int, s *Shape) {
	m.shapes = append(m.shapes[:index], m.shapes[index+1:]...)
	m.detachLayer(s)
	m.tl.purge(s)
	m.tl.recompute()
}

// CopyShape recreates src, which may belong to another model, on a private
// layer of this model.
func (m *Model) CopyShape(src *Shape) (*Shape, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil shape", ErrNotFound)
	}
	return m.CreateShape(src.Spec())
}

// CopyAnimation recreates a, which may belong to another model, on the
// shape of the same name in this model.
func (m *Model) CopyAnimation(a *Animation) (*Animation, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil animation", ErrNotFound)
	}
	s := m.ShapeByName(a.shape.name)
	if s == nil {
		return nil, fmt.Errorf("%w: shape %q", ErrNotFound, a.shape.name)
	}
	c := a.copyInto(s)
	if err := m.AddAnimation(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CopyFrom copies the named shape of src and all of its tweenable
// animations into m. A named source layer is recreated in m when missing.
func (m *Model) CopyFrom(src *Model, name string) error {
	s := src.ShapeByName(name)
	if s == nil {
		return fmt.Errorf("%w: shape %q", ErrNotFound, name)
	}
	if m.ShapeByName(name) != nil {
		return fmt.Errorf("%w: shape %q", ErrDuplicate, name)
	}

	var (
		err     error
		created *Layer
	)
	if l := src.LayerOf(s); l != nil && !l.private {
		if m.Layer(l.name) == nil {
			if err = m.AddLayer(l.name, l.order); err != nil {
				return err
			}
			created = m.Layer(l.name)
		}
		_, err = m.CreateShapeInLayer(s.Spec(), l.name)
	} else {
		_, err = m.CopyShape(s)
	}
	if err != nil {
		if created != nil {
			m.dropLayer(created)
		}
		return err
	}

	for _, a := range src.tl.animations {
		if a.shape != s || !a.kind.Tweenable() {
			continue
		}
		if _, err := m.CopyAnimation(a); err != nil {
			if rerr := m.RemoveShapeByName(name); rerr != nil {
				return fmt.Errorf("copy %s of shape %q: %v (rollback: %w)", a.kind, name, err, rerr)
			}
			if created != nil {
				m.dropLayer(created)
			}
			return fmt.Errorf("copy %s of shape %q: %w", a.kind, name, err)
		}
	}
	return nil
}

// NewSubset builds an independent model holding only the named shapes.
func NewSubset(src *Model, names ...string) (*Model, error) {
	sub := New()
	for _, name := range names {
		if err := sub.CopyFrom(src, name); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

// CalcCurrentPosition returns the end position of the latest move of s
// touching a tick at or before tick, or the initial position.
func (m *Model) CalcCurrentPosition(s *Shape, tick int) Position {
	if a := m.tl.latest(s, Move, tick); a != nil {
		return a.to.Position
	}
	return s.position
}

// CalcCurrentColor is CalcCurrentPosition for colour.
func (m *Model) CalcCurrentColor(s *Shape, tick int) Color {
	if a := m.tl.latest(s, Recolor, tick); a != nil {
		return a.to.Color
	}
	return s.color
}

// CalcCurrentSize is CalcCurrentPosition for size.
func (m *Model) CalcCurrentSize(s *Shape, tick int) Size {
	if a := m.tl.latest(s, Resize, tick); a != nil {
		return a.to.Size.Clone()
	}
	return s.size.Clone()
}

// CalcCurrentRotation is CalcCurrentPosition for rotation.
func (m *Model) CalcCurrentRotation(s *Shape, tick int) float64 {
	if a := m.tl.latest(s, Rotate, tick); a != nil {
		return a.to.Rotation
	}
	return s.rotation
}

// StateAt returns the tweened position, colour, size and rotation of s at
// tick.
func (m *Model) StateAt(s *Shape, tick int) State {
	return m.tl.stateAt(s, tick)
}

// Bounds returns the full state of the animated shape at the first and
// last tick of a.
func (m *Model) Bounds(a *Animation) (begin, end State) {
	return m.tl.stateAt(a.shape, a.time1), m.tl.stateAt(a.shape, a.time2)
}

// Frame lists the shapes alive at tick back to front with their tweened
// state.
func (m *Model) Frame(tick int) []ShapeState {
	if tick < 0 || tick >= len(m.tl.buckets) {
		return nil
	}
	var out []ShapeState
	seen := make(map[*Shape]bool)
	for _, a := range m.tl.buckets[tick] {
		if seen[a.shape] {
			continue
		}
		seen[a.shape] = true
		out = append(out, ShapeState{Shape: a.shape, State: m.tl.stateAt(a.shape, tick)})
	}
	return out
}

// ShapeStatus describes the shape at index.
func (m *Model) ShapeStatus(index int) (string, error) {
	s, err := m.Shape(index)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// String describes all shapes followed by every animation other than the
// appear and disappear markers, in tick units.
func (m *Model) String() string {
	var sb strings.Builder
	sb.WriteString("Shapes:\n")
	for _, s := range m.shapes {
		sb.WriteString(s.String())
		sb.WriteString("\n\n")
	}
	for _, a := range m.tl.animations {
		if a.kind == Appear || a.kind == Disappear {
			continue
		}
		sb.WriteString(a.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
