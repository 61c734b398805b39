package runes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/uint128"
)

// RuneId packs the etching block height and transaction index into the 128-bit id used by edicts: height << 16 | index.
type RuneId struct {
	Height uint32
	Index  uint16
}

var (
	ErrInvalidRuneId          = errs.ErrorKind("invalid rune id")
	ErrInvalidSeparator       = errors.Wrap(ErrInvalidRuneId, "must contain exactly one separator")
	ErrCannotParseBlockHeight = errors.Wrap(ErrInvalidRuneId, "cannot parse block height")
	ErrCannotParseTxIndex     = errors.Wrap(ErrInvalidRuneId, "cannot parse tx index")
)

func NewRuneId(height uint32, index uint16) RuneId {
	return RuneId{
		Height: height,
		Index:  index,
	}
}

// NewRuneIdFromUint128 unpacks an edict id. It fails if the height does not fit in 32 bits.
func NewRuneIdFromUint128(n uint128.Uint128) (RuneId, error) {
	height := n.Rsh(16)
	if !height.IsUint32() {
		return RuneId{}, errors.Wrapf(ErrInvalidRuneId, "height overflows uint32: %s", n)
	}
	return RuneId{
		Height: height.Uint32(),
		Index:  uint16(n.And64(math.MaxUint16).Uint64()),
	}, nil
}

// NewRuneIdFromString parses the "height/index" form.
func NewRuneIdFromString(str string) (RuneId, error) {
	strs := strings.Split(str, "/")
	if len(strs) != 2 {
		return RuneId{}, ErrInvalidSeparator
	}
	heightStr, indexStr := strs[0], strs[1]
	height, err := strconv.ParseUint(heightStr, 10, 32)
	if err != nil {
		return RuneId{}, errors.WithStack(errors.Join(err, ErrCannotParseBlockHeight))
	}
	index, err := strconv.ParseUint(indexStr, 10, 16)
	if err != nil {
		return RuneId{}, errors.WithStack(errors.Join(err, ErrCannotParseTxIndex))
	}
	return NewRuneId(uint32(height), uint16(index)), nil
}

func (r RuneId) Uint128() uint128.Uint128 {
	return uint128.From64(uint64(r.Height)).Lsh(16).Or(uint128.From64(uint64(r.Index)))
}

func (r RuneId) String() string {
	return fmt.Sprintf("%d/%d", r.Height, r.Index)
}
