package model

import "errors"

var (
	// ErrGeometry reports size parameters that do not fit the shape type.
	ErrGeometry = errors.New("invalid geometry")
	// ErrTemporal reports an interval that is reversed or outside the shape's lifetime.
	ErrTemporal = errors.New("invalid time range")
	// ErrOverlap reports two animations of one kind on one shape sharing a tick.
	ErrOverlap = errors.New("overlapping animation")
	// ErrNotFound reports a shape, layer or animation that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a shape or layer name that is already taken.
	ErrDuplicate = errors.New("name already in use")
	// ErrUnsupportedKind reports an animation kind that cannot be added or
	// removed through the public API.
	ErrUnsupportedKind = errors.New("unsupported animation kind")
)
