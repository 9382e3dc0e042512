package stream

import (
	"github.com/fogleman/ease"
	"github.com/matt-g-everett/animtx/model"
)

// An Animation produces the frame to show at a tick.
type Animation interface {
	CalculateFrame(tick int) *Frame
	Duration() int
}

// ModelAnimation plays back a model.
type ModelAnimation struct {
	model *model.Model
}

// NewModelAnimation creates an instance of a ModelAnimation.
func NewModelAnimation(m *model.Model) *ModelAnimation {
	a := new(ModelAnimation)
	a.model = m
	return a
}

func (a *ModelAnimation) CalculateFrame(tick int) *Frame {
	return NewFrame(tick, a.model.Frame(tick))
}

func (a *ModelAnimation) Duration() int {
	return a.model.Duration()
}

func (a *ModelAnimation) Model() *model.Model {
	return a.model
}

// Fade cross-fades from one animation into another. Every calculated
// frame moves the transition on by one step, eased in and out.
type Fade struct {
	from                Animation
	to                  Animation
	transition          float64
	transitionIncrement float64
}

// NewFade creates an instance of a Fade lasting the given number of frames.
func NewFade(from, to Animation, frames float64) *Fade {
	f := new(Fade)
	f.from = from
	f.to = to
	f.transition = 0.0
	f.transitionIncrement = 1.0
	if frames > 1 {
		f.transitionIncrement = 1.0 / frames
	}
	return f
}

func (f *Fade) CalculateFrame(tick int) *Frame {
	f1 := f.from.CalculateFrame(tick)
	f2 := f.to.CalculateFrame(tick)
	out := f1.InterpolateFrame(f2, ease.InOutQuad(f.transition))
	f.transition += f.transitionIncrement
	return out
}

func (f *Fade) Duration() int {
	return f.to.Duration()
}

// Done reports whether the fade has reached the target animation.
func (f *Fade) Done() bool {
	return f.transition >= 1.0
}
