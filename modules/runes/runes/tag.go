package runes

import (
	"github.com/gaze-network/runestone/pkg/leb128"
	"github.com/gaze-network/uint128"
)

// Tag identifies a field of a runestone message.
// Parity is part of the protocol: an unrecognized even tag burns the runestone, an unrecognized odd tag is ignored.
type Tag uint128.Uint128

func (t Tag) Uint128() uint128.Uint128 {
	return uint128.Uint128(t)
}

var (
	TagBody          = Tag(uint128.From64(0))
	TagFlags         = Tag(uint128.From64(2))
	TagRune          = Tag(uint128.From64(4))
	TagLimit         = Tag(uint128.From64(6))
	TagTerm          = Tag(uint128.From64(8))
	TagDeadline      = Tag(uint128.From64(10))
	TagDefaultOutput = Tag(uint128.From64(12))
	TagClaim         = Tag(uint128.From64(14))
	// TagBurn is never consumed, so any runestone carrying it is burned.
	TagBurn = Tag(uint128.From64(254))

	TagDivisibility = Tag(uint128.From64(1))
	TagSpacers      = Tag(uint128.From64(3))
	TagSymbol       = Tag(uint128.From64(5))
	// TagNop is never consumed
	TagNop = Tag(uint128.From64(255))
)

var tagNames = map[Tag]string{
	TagBody:          "body",
	TagFlags:         "flags",
	TagRune:          "rune",
	TagLimit:         "limit",
	TagTerm:          "term",
	TagDeadline:      "deadline",
	TagDefaultOutput: "default_output",
	TagClaim:         "claim",
	TagBurn:          "burn",
	TagDivisibility:  "divisibility",
	TagSpacers:       "spacers",
	TagSymbol:        "symbol",
	TagNop:           "nop",
}

// IsValid reports whether t is one of the known tags.
func (t Tag) IsValid() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) IsEven() bool {
	return t.Uint128().Mod64(2) == 0
}

func (t Tag) IsOdd() bool {
	return !t.IsEven()
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return t.Uint128().String()
}

// Encode appends the tag and value varints to payload.
func (t Tag) Encode(value uint128.Uint128, payload []byte) []byte {
	payload = leb128.AppendUint128(payload, t.Uint128())
	return leb128.AppendUint128(payload, value)
}
