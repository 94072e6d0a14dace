// Package analyzer holds the error kinds shared by the spectrum pipeline
// packages under analyzer/.
package analyzer

import "errors"

// ErrConfiguration marks a start-up parameter that is out of range. Callers
// must not proceed when an init step returns it.
var ErrConfiguration = errors.New("configuration error")

// ErrInvalidArgument marks a rejected runtime buffer (empty input, band count
// of zero or above MaxBands). The call had no effect.
var ErrInvalidArgument = errors.New("invalid argument")

// MaxBands is the largest band vector any component accepts.
const MaxBands = 32

// BiasLevel is the nominal DC level of a 12-bit sample.
const BiasLevel = 2048

// SampleMask keeps the low 12 bits of a conversion result.
const SampleMask = 0x0FFF
