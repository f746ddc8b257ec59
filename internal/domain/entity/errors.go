package entity

import "errors"

var (
	// ErrCoordsAndKey is returned when an action is built with both a location and a key.
	ErrCoordsAndKey = errors.New("coords and key are mutually exclusive")

	// ErrEmptyGeneration is returned when a model call produced no text.
	ErrEmptyGeneration = errors.New("model produced no output")

	// ErrNoSteps is returned when a plan response has no usable step list.
	ErrNoSteps = errors.New("plan has no steps")

	// ErrWorkerFailed is returned when the inference worker ends without a result.
	ErrWorkerFailed = errors.New("inference worker failed")

	ErrResultIndex = errors.New("history index out of range")
)
