package runes

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func TestFlagsTake(t *testing.T) {
	flags := Flags(uint128.Zero).Set(FlagEtch).Set(FlagMint)
	assert.Equal(t, uint128.From64(0b11), flags.Uint128())

	set, remaining := flags.Take(FlagEtch)
	assert.True(t, set)
	assert.Equal(t, uint128.From64(0b10), remaining.Uint128())
	// the receiver is left untouched
	assert.Equal(t, uint128.From64(0b11), flags.Uint128())

	set, remaining = remaining.Take(FlagEtch)
	assert.False(t, set)
	assert.Equal(t, uint128.From64(0b10), remaining.Uint128())

	set, remaining = remaining.Take(FlagMint)
	assert.True(t, set)
	assert.True(t, remaining.IsZero())
}

func TestFlagBurnMask(t *testing.T) {
	assert.Equal(t, uint128.New(0, 1<<63), FlagBurn.Mask().Uint128())

	set, remaining := FlagBurn.Mask().Take(FlagMint)
	assert.False(t, set)
	assert.False(t, remaining.IsZero())
}
