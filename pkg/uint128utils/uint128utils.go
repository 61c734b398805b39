// Package uint128utils holds the arithmetic helpers the codec needs on top of uint128.Uint128.
package uint128utils

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/uint128"
)

// SaturatingAdd returns a + b, clamped to uint128.Max.
func SaturatingAdd(a, b uint128.Uint128) uint128.Uint128 {
	sum, overflow := a.AddOverflow(b)
	if overflow {
		return uint128.Max
	}
	return sum
}

// Min returns the smaller of a and b.
func Min(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func ToUint32(n uint128.Uint128) (uint32, error) {
	if !n.IsUint32() {
		return 0, errors.WithStack(errs.OverflowUint32)
	}
	return n.Uint32(), nil
}

func ToUint8(n uint128.Uint128) (uint8, bool) {
	if n.Cmp64(math.MaxUint8) > 0 {
		return 0, false
	}
	return n.Uint8(), true
}
