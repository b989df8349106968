package category

import "errors"

var (
	// ErrInvalidConfig is returned for configuration that cannot be used
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrLabelMismatch is returned when the model's label count differs from the label table
	ErrLabelMismatch = errors.New("model label count does not match label table")

	// ErrClosed is returned by Predict after Close
	ErrClosed = errors.New("classifier is closed")
)
