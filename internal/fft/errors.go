package fft

import "errors"

// ErrInvalidInput is returned when a sequence length is not a power of two
// or does not match the plan it is passed to.
var ErrInvalidInput = errors.New("fft: invalid input")
