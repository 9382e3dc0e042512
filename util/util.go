package util

import (
	"math"
	"strconv"
	"strings"
)

// FormatDouble renders a float the way a plain double prints in the text
// and SVG outputs: shortest representation, always with a fractional part.
func FormatDouble(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FormatTenths rounds half away from zero to one decimal place.
func FormatTenths(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		// avoid "-0.0"
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// FormatNumber renders integral values without a fractional part.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Seconds converts a tick count to seconds at the given tempo.
func Seconds(tick int, tempo float64) float64 {
	return float64(tick) / tempo
}
