package runes

import (
	"github.com/gaze-network/uint128"
)

type MintTerms struct {
	// Block height after which the rune can no longer be minted
	Deadline *uint32
	// Maximum amount of the rune that can be minted in a single transaction
	Limit *uint128.Uint128
	// Number of blocks after the etching during which the rune can be minted
	Term *uint32
}

type Etching struct {
	// Number of decimals when displaying the rune
	Divisibility uint8
	// Rune name
	Rune *Rune
	// Bitmap of spacers to be displayed between each letter of the rune name
	Spacers uint32
	// Single Unicode codepoint to represent the rune
	Symbol *rune
	// Minting terms. If not provided, the rune is not mintable.
	Mint *MintTerms
}
