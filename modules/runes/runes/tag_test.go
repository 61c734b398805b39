package runes

import (
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
)

func TestTagParity(t *testing.T) {
	even := []Tag{TagBody, TagFlags, TagRune, TagLimit, TagTerm, TagDeadline, TagDefaultOutput, TagClaim, TagBurn}
	for _, tag := range even {
		assert.True(t, tag.IsEven(), tag.String())
		assert.False(t, tag.IsOdd(), tag.String())
		assert.True(t, tag.IsValid(), tag.String())
	}
	odd := []Tag{TagDivisibility, TagSpacers, TagSymbol, TagNop}
	for _, tag := range odd {
		assert.True(t, tag.IsOdd(), tag.String())
		assert.True(t, tag.IsValid(), tag.String())
	}

	unknown := Tag(uint128.From64(20))
	assert.False(t, unknown.IsValid())
	assert.True(t, unknown.IsEven())
	assert.Equal(t, "20", unknown.String())
}

func TestTagEncode(t *testing.T) {
	payload := TagFlags.Encode(uint128.From64(3), nil)
	assert.Equal(t, []byte{2, 3}, payload)

	payload = TagNop.Encode(uint128.From64(128), payload)
	assert.Equal(t, []byte{2, 3, 0xff, 0x01, 0x80, 0x01}, payload)
}

func TestFieldsTake(t *testing.T) {
	fields := Fields{
		TagRune: uint128.From64(7),
	}

	value := fields.Take(TagRune)
	if assert.NotNil(t, value) {
		assert.Equal(t, uint128.From64(7), *value)
	}
	assert.Nil(t, fields.Take(TagRune))
	assert.Nil(t, fields.Take(TagClaim))
	assert.Empty(t, fields)
}
