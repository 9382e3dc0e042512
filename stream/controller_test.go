package stream

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matt-g-everett/animtx/model"
	"github.com/matt-g-everett/animtx/view"
)

func newTestController(t *testing.T, loop bool) (*Controller, *fakeClient) {
	t.Helper()
	config := DefaultConfig()
	config.Playback.Loop = loop
	config.Playback.Fade = 0
	client := newFakeClient()
	c := NewController(config, NewStreamer(config, client), testModel(t))
	return c, client
}

func TestStepStopsAtEnd(t *testing.T) {
	c, _ := newTestController(t, false)

	for i := 0; i < 10; i++ {
		f := c.Step()
		if f == nil {
			t.Fatalf("Step() %d = nil", i)
		}
		if f.Tick != i {
			t.Errorf("Step() %d tick = %d", i, f.Tick)
		}
	}
	if f := c.Step(); f != nil {
		t.Errorf("Step() after end = %+v, want nil", f)
	}
	if st := c.Status(); st.Playing || st.Tick != 9 {
		t.Errorf("Status() = %+v, want stopped on tick 9", st)
	}

	c.Restart()
	if f := c.Step(); f == nil || f.Tick != 0 {
		t.Errorf("Step() after Restart = %+v, want tick 0", f)
	}
}

func TestStepLoops(t *testing.T) {
	c, _ := newTestController(t, true)
	for i := 0; i < 10; i++ {
		c.Step()
	}
	if f := c.Step(); f == nil || f.Tick != 0 {
		t.Errorf("Step() after wrap = %+v, want tick 0", f)
	}
}

func TestPauseSeekTempo(t *testing.T) {
	c, _ := newTestController(t, false)

	c.Pause()
	if f := c.Step(); f != nil {
		t.Errorf("Step() while paused = %+v, want nil", f)
	}
	c.Toggle()
	if !c.Status().Playing {
		t.Errorf("Toggle() did not resume")
	}

	if err := c.Seek(5); err != nil {
		t.Fatalf("Seek(5) error = %v", err)
	}
	if f := c.Step(); f.Tick != 5 {
		t.Errorf("Step() after Seek(5) tick = %d", f.Tick)
	}
	if err := c.Seek(10); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Seek(10) error = %v, want ErrOutOfRange", err)
	}

	if err := c.SetTempo(0); !errors.Is(err, view.ErrTempo) {
		t.Errorf("SetTempo(0) error = %v, want ErrTempo", err)
	}
	if err := c.SetTempo(40); err != nil {
		t.Fatalf("SetTempo(40) error = %v", err)
	}
	if err := c.SetTempo(50); err != nil {
		t.Fatalf("SetTempo(50) error = %v", err)
	}
	if got := c.Status().Tempo; got != 50 {
		t.Errorf("Tempo = %v, want 50", got)
	}
	if d := <-c.retime; d != 20*time.Millisecond {
		t.Errorf("retime = %v, want 20ms", d)
	}
}

func TestSubsetPlayback(t *testing.T) {
	c, client := newTestController(t, false)

	if err := c.PlaySubset(); !errors.Is(err, ErrEmptySubset) {
		t.Errorf("PlaySubset() error = %v, want ErrEmptySubset", err)
	}
	if err := c.ToggleShape("nope"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("ToggleShape(nope) error = %v, want ErrNotFound", err)
	}

	if err := c.ToggleShape("C"); err != nil {
		t.Fatalf("ToggleShape(C) error = %v", err)
	}
	if err := c.Seek(3); err != nil {
		t.Fatalf("Seek(3) error = %v", err)
	}
	if err := c.PlaySubset(); err != nil {
		t.Fatalf("PlaySubset() error = %v", err)
	}

	f := c.Step()
	if f.Tick != 3 || len(f.Shapes) != 1 || f.Shapes[0].Shape.Name() != "C" {
		t.Errorf("subset frame = %+v, want only C at tick 3", f)
	}
	if st := c.Status(); !st.Subset || len(st.Selected) != 1 {
		t.Errorf("Status() = %+v", st)
	}

	if err := c.ExportSubset(); err != nil {
		t.Fatalf("ExportSubset() error = %v", err)
	}
	sent := client.sent()
	last := sent[len(sent)-1]
	if last.topic != "animtx/export" || !last.retained || !strings.Contains(string(last.payload), `<circle id="C"`) {
		t.Errorf("export = %s %v %q", last.topic, last.retained, last.payload)
	}
	if strings.Contains(string(last.payload), `id="R"`) {
		t.Errorf("export contains unselected shape R")
	}

	// Removing the last shape falls back to the full model.
	if err := c.SelectShape("C", false); err != nil {
		t.Fatalf("SelectShape(C, false) error = %v", err)
	}
	if c.Status().Subset {
		t.Errorf("still playing an empty subset")
	}
	if f := c.Step(); len(f.Shapes) != 2 {
		t.Errorf("frame after clearing subset has %d shapes, want 2", len(f.Shapes))
	}
	if err := c.ExportSubset(); !errors.Is(err, ErrEmptySubset) {
		t.Errorf("ExportSubset() error = %v, want ErrEmptySubset", err)
	}
}

func TestSubsetFade(t *testing.T) {
	config := DefaultConfig()
	config.Playback.Tempo = 16
	config.Playback.Fade = 0.25
	c := NewController(config, NewStreamer(config, newFakeClient()), testModel(t))

	if err := c.ToggleShape("C"); err != nil {
		t.Fatalf("ToggleShape(C) error = %v", err)
	}
	if err := c.Seek(3); err != nil {
		t.Fatalf("Seek(3) error = %v", err)
	}
	if err := c.PlaySubset(); err != nil {
		t.Fatalf("PlaySubset() error = %v", err)
	}
	if !c.Status().Subset {
		t.Errorf("Status().Subset = false after PlaySubset")
	}

	// R leaves the frame over four eased steps while C stays put.
	wantWidth := []float64{10, 8.75, 5, 1.25}
	for i, want := range wantWidth {
		f := c.Step()
		if f.Tick != 3+i || len(f.Shapes) != 2 {
			t.Fatalf("fade frame %d = %+v, want R and C at tick %d", i, f, 3+i)
		}
		r, cs := f.Shapes[0], f.Shapes[1]
		if r.Shape.Name() != "R" || math.Abs(r.Size[0]-want) > 1e-9 {
			t.Errorf("fade frame %d R = %v, want width %v", i, r.Size, want)
		}
		if cs.Shape.Name() != "C" || !cs.Size.Equal(model.Size{5}) {
			t.Errorf("fade frame %d C = %v, want size [5]", i, cs.Size)
		}
	}

	f := c.Step()
	if f.Tick != 7 || len(f.Shapes) != 1 || f.Shapes[0].Shape.Name() != "C" {
		t.Errorf("frame after fade = %+v, want only C at tick 7", f)
	}
}

func TestRenderAndFrameAt(t *testing.T) {
	c, _ := newTestController(t, false)

	text, err := c.Render(view.TextFormat)
	if err != nil {
		t.Fatalf("Render(text) error = %v", err)
	}
	if !strings.Contains(text, "Shape R moves from (0.0, 0.0) to (100.0, 0.0) from t=0.0s to t=0.2s") {
		t.Errorf("Render(text) = %q", text)
	}

	f, err := c.FrameAt(4)
	if err != nil {
		t.Fatalf("FrameAt(4) error = %v", err)
	}
	if !f.Shapes[0].Position.Equal(model.Position{X: 100, Y: 0}) {
		t.Errorf("FrameAt(4) R = %v", f.Shapes[0].Position)
	}
	if _, err := c.FrameAt(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("FrameAt(-1) error = %v, want ErrOutOfRange", err)
	}
}

func TestRunPublishesFrames(t *testing.T) {
	config := DefaultConfig()
	config.Playback.Tempo = 1000
	client := newFakeClient()
	c := NewController(config, NewStreamer(config, client), testModel(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for len(client.sent()) < 10 {
		select {
		case <-deadline:
			t.Fatalf("published %d frames, want 10", len(client.sent()))
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	for i, p := range client.sent()[:10] {
		if p.topic != "animtx/stream" {
			t.Errorf("frame %d topic = %q", i, p.topic)
		}
	}
	if c.Status().Playing {
		t.Errorf("still playing after the last frame")
	}
}
