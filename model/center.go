package model

import "math"

// CalcShapeCenter converts a reference point position to the geometric
// center of the shape. Rotation always happens about this point.
func CalcShapeCenter(t ShapeType, pos Position, size Size) Position {
	switch t {
	case Rectangle:
		if len(size) < 2 {
			break
		}
		return Position{pos.X + size[0]/2, pos.Y + size[1]/2}
	case Square:
		if len(size) < 1 {
			break
		}
		return Position{pos.X + size[0]/2, pos.Y + size[0]/2}
	}
	return pos
}

// PolygonVertices lays the sides out as chords of a common circle centred
// on center, which exists for any side list passing ValidateSize. The
// first vertex sits straight right of the center.
func PolygonVertices(center Position, sides Size) []Position {
	if len(sides) < 3 {
		return nil
	}

	longest := 0
	for i, s := range sides {
		if s > sides[longest] {
			longest = i
		}
	}
	maxSide := sides[longest]

	angle := func(side, r float64) float64 {
		x := side / (2 * r)
		if x > 1 {
			x = 1
		}
		return 2 * math.Asin(x)
	}
	sumAll := func(r float64) float64 {
		var total float64
		for _, s := range sides {
			total += angle(s, r)
		}
		return total
	}

	rMin := maxSide / 2
	// Center inside the polygon when the chords still wrap the full circle
	// at the smallest radius the longest side allows.
	inside := sumAll(rMin) >= 2*math.Pi
	f := func(r float64) float64 {
		if inside {
			return sumAll(r) - 2*math.Pi
		}
		return sumAll(r) - 2*angle(maxSide, r)
	}

	lo, hi := rMin, rMin*2
	for f(hi)*f(lo) > 0 && hi < rMin*1e9 {
		hi *= 2
	}
	for i := 0; i < 200; i++ {
		mid := (lo + hi) / 2
		if (f(mid) > 0) == (f(lo) > 0) {
			lo = mid
		} else {
			hi = mid
		}
	}
	r := (lo + hi) / 2

	verts := make([]Position, len(sides))
	theta := 0.0
	for i, s := range sides {
		verts[i] = Position{center.X + r*math.Cos(theta), center.Y + r*math.Sin(theta)}
		a := angle(s, r)
		if !inside && i == longest {
			a = -a
		}
		theta += a
	}
	return verts
}
