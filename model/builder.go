package model

import "fmt"

// Builder assembles a Model step by step. The first failing step is kept
// and returned from Build; later steps are skipped.
type Builder struct {
	model *Model
	err   error
}

// NewBuilder creates a Builder around an empty Model.
func NewBuilder() *Builder {
	b := new(Builder)
	b.model = New()
	return b
}

func (b *Builder) AddLayer(name string, order int) *Builder {
	if b.err == nil {
		b.err = b.model.AddLayer(name, order)
	}
	return b
}

// AddShape creates a shape; an empty layer puts it on a private layer.
func (b *Builder) AddShape(spec ShapeSpec, layer string) *Builder {
	if b.err != nil {
		return b
	}
	if layer == "" {
		_, b.err = b.model.CreateShape(spec)
	} else {
		_, b.err = b.model.CreateShapeInLayer(spec, layer)
	}
	return b
}

func (b *Builder) shape(name string) *Shape {
	if b.err != nil {
		return nil
	}
	s := b.model.ShapeByName(name)
	if s == nil {
		b.err = fmt.Errorf("%w: shape %q", ErrNotFound, name)
	}
	return s
}

func (b *Builder) AddMove(name string, to Position, time1, time2 int) *Builder {
	if s := b.shape(name); s != nil {
		_, b.err = b.model.MoveShape(s, to, time1, time2)
	}
	return b
}

func (b *Builder) AddColorChange(name string, to Color, time1, time2 int) *Builder {
	if s := b.shape(name); s != nil {
		_, b.err = b.model.ChangeShapeColor(s, to, time1, time2)
	}
	return b
}

func (b *Builder) AddScaleChange(name string, to Size, time1, time2 int) *Builder {
	if s := b.shape(name); s != nil {
		_, b.err = b.model.ChangeShapeSize(s, to, time1, time2)
	}
	return b
}

func (b *Builder) AddRotation(name string, degrees float64, time1, time2 int) *Builder {
	if s := b.shape(name); s != nil {
		_, b.err = b.model.RotateShape(s, degrees, time1, time2)
	}
	return b
}

// Build returns the model, or the first error any step hit.
func (b *Builder) Build() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.model, nil
}
