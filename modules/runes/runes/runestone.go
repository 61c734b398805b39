package runes

import (
	"unicode/utf8"

	"github.com/btcsuite/btcd/txscript"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/pkg/leb128"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/gaze-network/runestone/pkg/uint128utils"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

const (
	MaxDivisibility      uint8  = 38
	MaxSpacers           uint32 = 0b00000111_11111111_11111111_11111111
	MaxScriptElementSize        = txscript.MaxScriptElementSize
)

// MaxLimit is the largest mint limit, 2^64. Larger limits are clamped.
var MaxLimit = uint128.New(0, 1)

type Runestone struct {
	// If true, the runestone carries unrecognized even tags or flags and must not be honored.
	Burn bool
	// Rune id claimed by this transaction
	Claim *uint128.Uint128
	// Transaction output receiving unallocated runes
	DefaultOutput *uint32
	// List of edicts to execute in this transaction
	Edicts []Edict
	// Rune to etch in this transaction
	Etching *Etching
}

// DecipherRunestone deciphers a runestone from a transaction. If no runestone is found, nil is returned.
// A malformed script or varint after the magic number is treated the same as a missing runestone.
func DecipherRunestone(tx *types.Transaction) *Runestone {
	payload, err := RunestonePayloadFromTx(tx)
	if err != nil {
		logger.Debug("ignoring runestone with invalid script", slogx.Stringer("tx_hash", tx.TxHash), slogx.Error(err))
		return nil
	}
	if payload == nil {
		return nil
	}

	integers, err := DecodeIntegers(payload)
	if err != nil {
		logger.Debug("ignoring runestone with malformed payload", slogx.Stringer("tx_hash", tx.TxHash), slogx.Error(err))
		return nil
	}
	return RunestoneFromIntegers(integers)
}

// RunestoneFromIntegers interprets decoded payload integers. Out of range fields are dropped or clamped.
func RunestoneFromIntegers(integers []uint128.Uint128) *Runestone {
	message := MessageFromIntegers(integers)
	fields, edicts := message.Fields, message.Edicts

	claim := fields.Take(TagClaim)
	deadline := takeUint32(fields, TagDeadline)
	defaultOutput := takeUint32(fields, TagDefaultOutput)
	term := takeUint32(fields, TagTerm)

	var divisibility uint8
	if value := fields.Take(TagDivisibility); value != nil {
		if d, ok := uint128utils.ToUint8(*value); ok && d <= MaxDivisibility {
			divisibility = d
		}
	}

	var limit *uint128.Uint128
	if value := fields.Take(TagLimit); value != nil {
		limit = lo.ToPtr(uint128utils.Min(*value, MaxLimit))
	}

	runeName := (*Rune)(fields.Take(TagRune))

	// spacers are only honored when they fit in a single byte
	var spacers uint32
	if value := fields.Take(TagSpacers); value != nil {
		if s, ok := uint128utils.ToUint8(*value); ok {
			spacers = uint32(s)
		}
	}

	var symbol *rune
	if value := fields.Take(TagSymbol); value != nil && value.IsUint32() {
		if r := rune(value.Uint32()); utf8.ValidRune(r) {
			symbol = &r
		}
	}

	flags := Flags(lo.FromPtr(fields.Take(TagFlags)))
	etch, flags := flags.Take(FlagEtch)
	mint, flags := flags.Take(FlagMint)

	var etching *Etching
	if etch {
		etching = &Etching{
			Divisibility: divisibility,
			Rune:         runeName,
			Spacers:      spacers,
			Symbol:       symbol,
		}
		if mint {
			etching.Mint = &MintTerms{
				Deadline: deadline,
				Limit:    limit,
				Term:     term,
			}
		}
	}

	return &Runestone{
		Burn:          !flags.IsZero() || lo.ContainsBy(lo.Keys(fields), Tag.IsEven),
		Claim:         claim,
		DefaultOutput: defaultOutput,
		Edicts:        edicts,
		Etching:       etching,
	}
}

func takeUint32(fields Fields, tag Tag) *uint32 {
	value := fields.Take(tag)
	if value == nil {
		return nil
	}
	n, err := uint128utils.ToUint32(*value)
	if err != nil {
		return nil
	}
	return &n
}

// Payload returns the encoded runestone fields and edicts, without the script envelope.
func (r Runestone) Payload() []byte {
	var payload []byte

	if r.Etching != nil {
		etching := r.Etching
		flags := Flags(uint128.Zero).Set(FlagEtch)
		if etching.Mint != nil {
			flags = flags.Set(FlagMint)
		}
		payload = TagFlags.Encode(flags.Uint128(), payload)

		if etching.Rune != nil {
			payload = TagRune.Encode(etching.Rune.Uint128(), payload)
		}
		if etching.Divisibility != 0 {
			payload = TagDivisibility.Encode(uint128.From64(uint64(etching.Divisibility)), payload)
		}
		if etching.Spacers != 0 {
			payload = TagSpacers.Encode(uint128.From64(uint64(etching.Spacers)), payload)
		}
		if etching.Symbol != nil {
			payload = TagSymbol.Encode(uint128.From64(uint64(uint32(*etching.Symbol))), payload)
		}
		if mint := etching.Mint; mint != nil {
			if mint.Deadline != nil {
				payload = TagDeadline.Encode(uint128.From64(uint64(*mint.Deadline)), payload)
			}
			if mint.Limit != nil {
				payload = TagLimit.Encode(*mint.Limit, payload)
			}
			if mint.Term != nil {
				payload = TagTerm.Encode(uint128.From64(uint64(*mint.Term)), payload)
			}
		}
	}

	if r.Claim != nil {
		payload = TagClaim.Encode(*r.Claim, payload)
	}
	if r.DefaultOutput != nil {
		payload = TagDefaultOutput.Encode(uint128.From64(uint64(*r.DefaultOutput)), payload)
	}
	if r.Burn {
		payload = TagBurn.Encode(uint128.Zero, payload)
	}

	if len(r.Edicts) > 0 {
		payload = leb128.AppendUint128(payload, TagBody.Uint128())
		previousId := uint128.Zero
		for _, edict := range SortEdicts(r.Edicts) {
			payload = leb128.AppendUint128(payload, edict.Id.Sub(previousId))
			payload = leb128.AppendUint128(payload, edict.Amount)
			payload = leb128.AppendUint128(payload, edict.Output)
			previousId = edict.Id
		}
	}

	return payload
}

// Encipher encodes a runestone into a scriptPubKey, ready to be put into a transaction output.
func (r Runestone) Encipher() ([]byte, error) {
	return runestoneScript(r.Payload()), nil
}
