// Package leb128 implements the unsigned LEB128 variable-length encoding for 128-bit integers.
package leb128

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/uint128"
)

const (
	ErrEmpty        = errs.ErrorKind("leb128: empty byte sequence")
	ErrUnterminated = errs.ErrorKind("leb128: unterminated byte sequence")
)

// maxBytes is the longest encoding of a uint128 value (ceil(128 / 7)).
const maxBytes = 19

// EncodeUint128 returns the LEB128 encoding of input. Zero is encoded as a single 0x00 byte.
func EncodeUint128(input uint128.Uint128) []byte {
	return AppendUint128(make([]byte, 0, maxBytes), input)
}

// AppendUint128 appends the LEB128 encoding of input to dst and returns the extended slice.
func AppendUint128(dst []byte, input uint128.Uint128) []byte {
	// for n >> 7 > 0
	for !input.Rsh(7).IsZero() {
		last_7_bits := input.And64(0b0111_1111).Uint8()
		dst = append(dst, last_7_bits|0b1000_0000)
		input = input.Rsh(7)
	}
	last_byte := input.Uint8()
	return append(dst, last_byte)
}

// ReadUint128 reads one LEB128 encoded integer from r.
// It fails with errs.OverflowUint128 if the value does not fit in 128 bits,
// and with ErrUnterminated if r runs out of bytes before the final group.
func ReadUint128(r io.ByteReader) (uint128.Uint128, error) {
	n := uint128.Zero
	for i := 0; ; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if i == 0 {
				return uint128.Zero, errors.Join(ErrEmpty, err)
			}
			return uint128.Zero, errors.Join(ErrUnterminated, err)
		}
		if i >= maxBytes {
			return uint128.Zero, errors.WithStack(errs.OverflowUint128)
		}
		value := uint64(b & 0b0111_1111)
		// the last group may only carry the two remaining bits (126 and 127)
		if i == maxBytes-1 && value&0b0111_1100 != 0 {
			return uint128.Zero, errors.WithStack(errs.OverflowUint128)
		}
		n = n.Or(uint128.From64(value).Lsh(uint(7 * i)))
		// if the high bit is not set, then this is the last byte
		if b&0b1000_0000 == 0 {
			return n, nil
		}
	}
}
