package runes

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func TestNewRuneIdFromString(t *testing.T) {
	type testcase struct {
		name           string
		input          string
		expectedOutput RuneId
		shouldError    bool
	}
	testcases := []testcase{
		{
			name:           "valid rune id",
			input:          "1/2",
			expectedOutput: RuneId{Height: 1, Index: 2},
		},
		{
			name:        "too many separators",
			input:       "1/2/3",
			shouldError: true,
		},
		{
			name:        "too few separators",
			input:       "1",
			shouldError: true,
		},
		{
			name:        "invalid index",
			input:       "1/a",
			shouldError: true,
		},
		{
			name:        "invalid height",
			input:       "a/1",
			shouldError: true,
		},
		{
			name:        "index overflows uint16",
			input:       "1/65536",
			shouldError: true,
		},
		{
			name:        "height overflows uint32",
			input:       "4294967296/1",
			shouldError: true,
		},
		{
			name:        "empty index",
			input:       "1/",
			shouldError: true,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			runeId, err := NewRuneIdFromString(tc.input)
			if tc.shouldError {
				assert.ErrorIs(t, err, ErrInvalidRuneId)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedOutput, runeId)
			}
		})
	}
}

func TestRuneIdUint128(t *testing.T) {
	runeId := NewRuneId(3, 1)
	assert.Equal(t, uint128.From64(3<<16|1), runeId.Uint128())
	assert.Equal(t, "3/1", runeId.String())

	decoded, err := NewRuneIdFromUint128(runeId.Uint128())
	assert.NoError(t, err)
	assert.Equal(t, runeId, decoded)

	maxId := NewRuneId(^uint32(0), ^uint16(0))
	decoded, err = NewRuneIdFromUint128(maxId.Uint128())
	assert.NoError(t, err)
	assert.Equal(t, maxId, decoded)

	_, err = NewRuneIdFromUint128(uint128.From64(1 << 48))
	assert.ErrorIs(t, err, ErrInvalidRuneId)
}

func TestNewRuneFromString(t *testing.T) {
	r, err := NewRuneFromString("340282366920938463463374607431768211455")
	assert.NoError(t, err)
	assert.Equal(t, Rune(uint128.Max), r)
	assert.Equal(t, "340282366920938463463374607431768211455", r.String())

	_, err = NewRuneFromString("abc")
	assert.ErrorIs(t, err, ErrInvalidBase10)
}
