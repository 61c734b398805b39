package runes

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func integers(values ...uint64) []uint128.Uint128 {
	result := make([]uint128.Uint128, 0, len(values))
	for _, value := range values {
		result = append(result, uint128.From64(value))
	}
	return result
}

func TestMessageFromIntegers(t *testing.T) {
	type testcase struct {
		name     string
		input    []uint128.Uint128
		expected Message
	}
	testcases := []testcase{
		{
			name:     "empty",
			input:    nil,
			expected: Message{Fields: Fields{}},
		},
		{
			name:  "duplicate tag keeps first value",
			input: integers(4, 1, 4, 2),
			expected: Message{
				Fields: Fields{TagRune: uint128.From64(1)},
			},
		},
		{
			name:  "truncated field is dropped",
			input: integers(4, 1, 6),
			expected: Message{
				Fields: Fields{TagRune: uint128.From64(1)},
			},
		},
		{
			name:  "edict ids accumulate",
			input: integers(0, 5, 10, 0, 3, 20, 1),
			expected: Message{
				Fields: Fields{},
				Edicts: []Edict{
					{Id: uint128.From64(5), Amount: uint128.From64(10), Output: uint128.From64(0)},
					{Id: uint128.From64(8), Amount: uint128.From64(20), Output: uint128.From64(1)},
				},
			},
		},
		{
			name:  "incomplete edict is dropped",
			input: integers(0, 5, 10),
			expected: Message{
				Fields: Fields{},
			},
		},
		{
			name:  "trailing partial edict is dropped",
			input: integers(0, 5, 10, 0, 1, 2),
			expected: Message{
				Fields: Fields{},
				Edicts: []Edict{
					{Id: uint128.From64(5), Amount: uint128.From64(10), Output: uint128.From64(0)},
				},
			},
		},
		{
			name:  "fields before body",
			input: integers(12, 1, 0, 1, 2, 3),
			expected: Message{
				Fields: Fields{TagDefaultOutput: uint128.From64(1)},
				Edicts: []Edict{
					{Id: uint128.From64(1), Amount: uint128.From64(2), Output: uint128.From64(3)},
				},
			},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, MessageFromIntegers(tc.input))
		})
	}
}

func TestMessageFromIntegersSaturatesEdictId(t *testing.T) {
	input := []uint128.Uint128{
		TagBody.Uint128(),
		uint128.Max, uint128.From64(1), uint128.Zero,
		uint128.From64(1), uint128.From64(2), uint128.Zero,
	}
	message := MessageFromIntegers(input)
	assert.Equal(t, []Edict{
		{Id: uint128.Max, Amount: uint128.From64(1), Output: uint128.Zero},
		{Id: uint128.Max, Amount: uint128.From64(2), Output: uint128.Zero},
	}, message.Edicts)
}
