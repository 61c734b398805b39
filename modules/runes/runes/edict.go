package runes

import (
	"slices"

	"github.com/gaze-network/uint128"
)

// Edict transfers Amount of the rune identified by Id to the transaction output at index Output.
type Edict struct {
	Id     uint128.Uint128
	Amount uint128.Uint128
	Output uint128.Uint128
}

// SortEdicts returns a copy of edicts sorted by ascending id. Edicts with equal ids keep their relative order.
func SortEdicts(edicts []Edict) []Edict {
	sorted := slices.Clone(edicts)
	slices.SortStableFunc(sorted, func(i, j Edict) int {
		return i.Id.Cmp(j.Id)
	})
	return sorted
}
