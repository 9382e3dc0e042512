package model

import (
	"fmt"
	"sort"
)

// timeline keeps every animation twice: once in a list ordered by start
// tick, and once in each per-tick bucket the animation occupies. Both views
// share the same *Animation records.
type timeline struct {
	animations []*Animation
	buckets    [][]*Animation
}

// grow extends the bucket array so tick is addressable. It never shrinks.
func (t *timeline) grow(tick int) {
	for len(t.buckets) <= tick {
		t.buckets = append(t.buckets, nil)
	}
}

func (t *timeline) checkOverlap(a *Animation) error {
	for tick := a.time1; tick <= a.time2 && tick < len(t.buckets); tick++ {
		for _, e := range t.buckets[tick] {
			if e.shape == a.shape && e.kind == a.kind {
				return fmt.Errorf("%w: %s on shape %q at t=%d collides with [%d,%d]",
					ErrOverlap, a.kind, a.shape.name, tick, e.time1, e.time2)
			}
		}
	}
	return nil
}

// addChronological inserts before the first animation that starts later,
// so ties keep insertion order.
func (t *timeline) addChronological(a *Animation) {
	i := sort.Search(len(t.animations), func(i int) bool {
		return t.animations[i].time1 > a.time1
	})
	t.animations = append(t.animations, nil)
	copy(t.animations[i+1:], t.animations[i:])
	t.animations[i] = a
}

// addToBucket places a into one bucket. A still placeholder for the same
// shape is replaced. Otherwise the entry joins the shape's existing
// entries, or goes in front of the first shape on a higher layer.
func (t *timeline) addToBucket(tick int, a *Animation, orderOf func(*Shape) int) {
	b := t.buckets[tick]
	last := -1
	for i, e := range b {
		if e.shape != a.shape {
			continue
		}
		if e.kind == Still {
			b[i] = a
			return
		}
		last = i
	}

	pos := len(b)
	if last >= 0 {
		pos = last + 1
	} else {
		order := orderOf(a.shape)
		for i, e := range b {
			if orderOf(e.shape) > order {
				pos = i
				break
			}
		}
	}

	t.buckets[tick] = insertAt(b, pos, a)
}

func insertAt(b []*Animation, pos int, a *Animation) []*Animation {
	b = append(b, nil)
	copy(b[pos+1:], b[pos:])
	b[pos] = a
	return b
}

func (t *timeline) insert(a *Animation, orderOf func(*Shape) int) {
	t.grow(a.time2)
	t.addChronological(a)
	for tick := a.time1; tick <= a.time2; tick++ {
		t.addToBucket(tick, a, orderOf)
	}
}

// remove drops a from both views. Ticks left without any entry for the
// shape inside its lifetime get their still placeholder back, in the slot
// a occupied.
func (t *timeline) remove(a *Animation, orderOf func(*Shape) int) {
	for i, e := range t.animations {
		if e == a {
			t.animations = append(t.animations[:i], t.animations[i+1:]...)
			break
		}
	}

	s := a.shape
	for tick := a.time1; tick <= a.time2 && tick < len(t.buckets); tick++ {
		b := t.buckets[tick]
		slot := -1
		others := false
		for i := 0; i < len(b); i++ {
			if b[i] == a {
				b = append(b[:i], b[i+1:]...)
				slot = i
				i--
				continue
			}
			if b[i].shape == s {
				others = true
			}
		}
		t.buckets[tick] = b
		if others || tick <= s.appear || tick >= s.disappear {
			continue
		}
		still := newMarker(Still, s, tick)
		if slot >= 0 {
			t.buckets[tick] = insertAt(b, slot, still)
		} else {
			t.addToBucket(tick, still, orderOf)
		}
	}
}

// purge removes every entry referencing s.
func (t *timeline) purge(s *Shape) {
	kept := t.animations[:0]
	for _, a := range t.animations {
		if a.shape != s {
			kept = append(kept, a)
		}
	}
	for i := len(kept); i < len(t.animations); i++ {
		t.animations[i] = nil
	}
	t.animations = kept

	for tick, b := range t.buckets {
		out := b[:0]
		for _, a := range b {
			if a.shape != s {
				out = append(out, a)
			}
		}
		for i := len(out); i < len(b); i++ {
			b[i] = nil
		}
		t.buckets[tick] = out
	}
}

// restack moves the entries of s in every bucket to the slot its layer
// order now calls for, keeping their relative order.
func (t *timeline) restack(s *Shape, orderOf func(*Shape) int) {
	for tick, b := range t.buckets {
		var mine, rest []*Animation
		for _, a := range b {
			if a.shape == s {
				mine = append(mine, a)
			} else {
				rest = append(rest, a)
			}
		}
		if len(mine) == 0 {
			continue
		}

		pos := len(rest)
		order := orderOf(s)
		for i, e := range rest {
			if orderOf(e.shape) > order {
				pos = i
				break
			}
		}

		out := make([]*Animation, 0, len(b))
		out = append(out, rest[:pos]...)
		out = append(out, mine...)
		out = append(out, rest[pos:]...)
		t.buckets[tick] = out
	}
}

// recompute chains begin values: every tweenable animation starts where
// the previous one of the same kind on the same shape ended, or at the
// shape's initial value. The outcome depends only on the chronological
// list, not on the order edits were made in.
func (t *timeline) recompute() {
	running := make(map[*Shape]*State)
	for _, a := range t.animations {
		if !a.kind.Tweenable() {
			continue
		}
		st, ok := running[a.shape]
		if !ok {
			initial := a.shape.InitialState()
			st = &initial
			running[a.shape] = st
		}

		switch a.kind {
		case Move:
			a.from.Position = st.Position
			st.Position = a.to.Position
		case Recolor:
			a.from.Color = st.Color
			st.Color = a.to.Color
		case Resize:
			a.from.Size = st.Size.Clone()
			st.Size = a.to.Size.Clone()
		case Rotate:
			a.from.Rotation = st.Rotation
			st.Rotation = a.to.Rotation
		}
	}
}

// latest scans back from tick for the nearest bucket holding an animation
// of kind on s.
func (t *timeline) latest(s *Shape, kind Kind, tick int) *Animation {
	if tick >= len(t.buckets) {
		tick = len(t.buckets) - 1
	}
	for i := tick; i >= 0; i-- {
		for _, a := range t.buckets[i] {
			if a.shape == s && a.kind == kind {
				return a
			}
		}
	}
	return nil
}

// find returns the animation of kind on s occupying tick.
func (t *timeline) find(s *Shape, kind Kind, tick int) *Animation {
	if tick < 0 || tick >= len(t.buckets) {
		return nil
	}
	for _, a := range t.buckets[tick] {
		if a.shape == s && a.kind == kind {
			return a
		}
	}
	return nil
}

// stateAt tweens every attribute of s at tick.
func (t *timeline) stateAt(s *Shape, tick int) State {
	st := s.InitialState()
	for _, a := range t.animations {
		if a.time1 > tick {
			break
		}
		if a.shape == s && a.kind.Tweenable() {
			a.apply(&st, tick)
		}
	}
	return st
}
