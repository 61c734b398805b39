package runes

import (
	"github.com/gaze-network/uint128"
)

// Flag is a bit position inside the FLAGS field of a runestone.
type Flag uint8

const (
	FlagEtch = Flag(0)
	FlagMint = Flag(1)
	// FlagBurn is never consumed, setting it burns the runestone.
	FlagBurn = Flag(127)
)

func (f Flag) Mask() Flags {
	return Flags(uint128.From64(1).Lsh(uint(f)))
}

// Flags is a bitmask of flags set on a runestone.
type Flags uint128.Uint128

func (f Flags) Uint128() uint128.Uint128 {
	return uint128.Uint128(f)
}

func (f Flags) IsZero() bool {
	return f.Uint128().IsZero()
}

func (f Flags) And(other Flags) Flags {
	return Flags(f.Uint128().And(other.Uint128()))
}

func (f Flags) Or(other Flags) Flags {
	return Flags(f.Uint128().Or(other.Uint128()))
}

// Take reports whether flag is set and returns the flags with that bit cleared.
func (f Flags) Take(flag Flag) (bool, Flags) {
	mask := flag.Mask()
	if f.And(mask).IsZero() {
		return false, f
	}
	// f - (1 << flag)
	return true, Flags(f.Uint128().Sub(mask.Uint128()))
}

// Set returns the flags with flag set.
func (f Flags) Set(flag Flag) Flags {
	return f.Or(flag.Mask())
}
