package runes

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/uint128"
)

// Rune is the opaque 128-bit name value of a rune. Mapping it to and from letters is left to the caller.
type Rune uint128.Uint128

func NewRune(value uint64) Rune {
	return Rune(uint128.From64(value))
}

var ErrInvalidBase10 = errs.ErrorKind("invalid base-10 character: must be in the range [0-9]")

// NewRuneFromString creates a new Rune from a string of base-10 integer
func NewRuneFromString(value string) (Rune, error) {
	n, err := uint128.FromString(value)
	if err != nil {
		return Rune{}, errors.WithStack(errors.Join(err, ErrInvalidBase10))
	}
	return Rune(n), nil
}

func (r Rune) Uint128() uint128.Uint128 {
	return uint128.Uint128(r)
}

func (r Rune) String() string {
	return r.Uint128().String()
}
