package domain

import "errors"

var (
	ErrInvalidRotation     = errors.New("rotation must be 0, 90, 180 or 270 degrees")
	ErrInvalidResizeMode   = errors.New("unknown resize mode")
	ErrInvalidResizeTarget = errors.New("resize target dimensions must be positive")
	ErrInvalidSizeCeiling  = errors.New("size ceiling must not be negative")
	ErrInvalidFormat       = errors.New("unknown output format")
)
