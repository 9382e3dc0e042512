package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/view"
)

var (
	// ErrEmptySubset is returned when subset playback or export is asked
	// for before any shape was selected.
	ErrEmptySubset = errors.New("no shapes selected")
	// ErrOutOfRange is returned when seeking past the end of the animation.
	ErrOutOfRange = errors.New("tick out of range")
)

// Status is a snapshot of the playback state.
type Status struct {
	Tick     int      `json:"tick"`
	Duration int      `json:"duration"`
	Tempo    float64  `json:"tempo"`
	Loop     bool     `json:"loop"`
	Playing  bool     `json:"playing"`
	Subset   bool     `json:"subset"`
	Selected []string `json:"selected"`
}

// Controller plays a model tick by tick at a tempo in ticks per second,
// optionally restricted to a subset of its shapes.
type Controller struct {
	streamer *Streamer
	control  string

	mu        sync.Mutex
	full      *ModelAnimation
	subset    *ModelAnimation
	current   *ModelAnimation
	animation Animation
	selected  []string
	tick      int
	tempo     float64
	fade      float64
	loop      bool
	playing   bool
	retime    chan time.Duration
}

// NewController creates an instance of a Controller.
func NewController(config Config, streamer *Streamer, m *model.Model) *Controller {
	c := new(Controller)
	c.streamer = streamer
	c.control = config.Mqtt.Topics.Control

	c.full = NewModelAnimation(m)
	c.current = c.full
	c.animation = c.full
	c.tempo = config.Playback.Tempo
	if c.tempo <= 0 {
		c.tempo = DefaultConfig().Playback.Tempo
	}
	c.fade = config.Playback.Fade
	c.loop = config.Playback.Loop
	c.playing = true
	c.retime = make(chan time.Duration, 1)
	return c
}

func interval(tempo float64) time.Duration {
	return time.Duration(float64(time.Second) / tempo)
}

// Status reports the current playback state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	selected := make([]string, len(c.selected))
	copy(selected, c.selected)
	return Status{
		Tick:     c.tick,
		Duration: c.current.Duration(),
		Tempo:    c.tempo,
		Loop:     c.loop,
		Playing:  c.playing,
		Subset:   c.current == c.subset && c.subset != nil,
		Selected: selected,
	}
}

// Step returns the frame at the current tick and advances, or returns nil
// while paused. At the end the tick wraps when looping, otherwise
// playback stops on the last frame.
func (c *Controller) Step() *Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return nil
	}

	f := c.animation.CalculateFrame(c.tick)
	if fade, ok := c.animation.(*Fade); ok && fade.Done() {
		c.animation = c.current
	}
	c.tick++
	if c.tick >= c.current.Duration() {
		if c.loop {
			c.tick = 0
		} else {
			c.tick = c.current.Duration() - 1
			if c.tick < 0 {
				c.tick = 0
			}
			c.playing = false
		}
	}
	return f
}

func (c *Controller) Play() {
	c.mu.Lock()
	c.playing = true
	c.mu.Unlock()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	c.playing = false
	c.mu.Unlock()
}

func (c *Controller) Toggle() {
	c.mu.Lock()
	c.playing = !c.playing
	c.mu.Unlock()
}

// Restart rewinds to the first tick and plays.
func (c *Controller) Restart() {
	c.mu.Lock()
	c.tick = 0
	c.playing = true
	c.mu.Unlock()
}

func (c *Controller) SetLoop(loop bool) {
	c.mu.Lock()
	c.loop = loop
	c.mu.Unlock()
}

// SetTempo changes the playback rate without moving the current tick.
func (c *Controller) SetTempo(tempo float64) error {
	if tempo <= 0 {
		return fmt.Errorf("%w: %v", view.ErrTempo, tempo)
	}
	c.mu.Lock()
	c.tempo = tempo
	c.mu.Unlock()

	select {
	case <-c.retime:
	default:
	}
	c.retime <- interval(tempo)
	return nil
}

// Seek jumps to tick without changing whether playback runs.
func (c *Controller) Seek(tick int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick < 0 || tick >= c.current.Duration() {
		return fmt.Errorf("%w: %d of %d", ErrOutOfRange, tick, c.current.Duration())
	}
	c.tick = tick
	return nil
}

// SelectShape adds or removes a shape of the full model from the subset.
func (c *Controller) SelectShape(name string, selected bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectShape(name, selected)
}

// ToggleShape flips whether a shape is part of the subset.
func (c *Controller) ToggleShape(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectShape(name, c.indexOf(name) < 0)
}

func (c *Controller) indexOf(name string) int {
	for i, n := range c.selected {
		if n == name {
			return i
		}
	}
	return -1
}

func (c *Controller) selectShape(name string, selected bool) error {
	if c.full.Model().ShapeByName(name) == nil {
		return fmt.Errorf("%w: shape %q", model.ErrNotFound, name)
	}

	idx := c.indexOf(name)
	switch {
	case selected && idx < 0:
		c.selected = append(c.selected, name)
	case !selected && idx >= 0:
		c.selected = append(c.selected[:idx], c.selected[idx+1:]...)
	default:
		return nil
	}
	return c.rebuildSubset()
}

func (c *Controller) rebuildSubset() error {
	playingSubset := c.subset != nil && c.current == c.subset
	if len(c.selected) == 0 {
		c.subset = nil
		if playingSubset {
			c.switchTo(c.full)
		}
		return nil
	}

	m, err := model.NewSubset(c.full.Model(), c.selected...)
	if err != nil {
		return err
	}
	c.subset = NewModelAnimation(m)
	if playingSubset {
		c.switchTo(c.subset)
	}
	return nil
}

// switchTo makes next the model being played, cross-fading from whatever
// is on screen when a fade is configured.
func (c *Controller) switchTo(next *ModelAnimation) {
	if next == c.current {
		return
	}
	c.current = next
	if c.fade > 0 {
		c.animation = NewFade(c.animation, next, c.tempo*c.fade)
	} else {
		c.animation = next
	}
	if c.tick >= next.Duration() {
		c.tick = 0
	}
}

// PlaySubset switches playback to the selected shapes, keeping the tick.
func (c *Controller) PlaySubset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subset == nil {
		return ErrEmptySubset
	}
	c.switchTo(c.subset)
	c.playing = true
	return nil
}

// PlayFull switches playback back to every shape.
func (c *Controller) PlayFull() {
	c.mu.Lock()
	c.switchTo(c.full)
	c.playing = true
	c.mu.Unlock()
}

// Current returns the model being played.
func (c *Controller) Current() *model.Model {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Model()
}

// Render writes the model being played in format f at the current tempo.
func (c *Controller) Render(f view.Format) (string, error) {
	c.mu.Lock()
	m, tempo := c.current.Model(), c.tempo
	c.mu.Unlock()

	switch f {
	case view.TextFormat:
		return view.Text(m, tempo), nil
	case view.SVGFormat:
		return view.SVG(m, tempo), nil
	}
	return "", fmt.Errorf("unknown view %v", f)
}

// FrameAt resolves the frame at tick of the model being played.
func (c *Controller) FrameAt(tick int) (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick < 0 || tick >= c.current.Duration() {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, tick, c.current.Duration())
	}
	return c.current.CalculateFrame(tick), nil
}

// ExportSubset publishes the selected shapes as an SVG document.
func (c *Controller) ExportSubset() error {
	c.mu.Lock()
	subset, tempo := c.subset, c.tempo
	c.mu.Unlock()
	if subset == nil {
		return ErrEmptySubset
	}
	return c.streamer.Export(view.SVG(subset.Model(), tempo))
}

// Run publishes one frame per tick until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	c.mu.Lock()
	publishTimer := time.NewTicker(interval(c.tempo))
	c.mu.Unlock()
	defer publishTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-c.retime:
			publishTimer.Reset(d)
		case <-publishTimer.C:
			f := c.Step()
			if f == nil {
				continue
			}
			if err := c.streamer.SendFrame(f); err != nil {
				log.Printf("Failed to send frame %d: %v", f.Tick, err)
			}
		}
	}
}
