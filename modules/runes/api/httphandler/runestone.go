package httphandler

import (
	"encoding/hex"
	"math"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/modules/runes/runes"
	"github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/gaze-network/runestone/pkg/decimals"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

// Runestone is the JSON form of a runestone, used both in decode responses and encode requests.
// 128-bit integers are decimal strings. Ids may also be written as "height/index".
type Runestone struct {
	Burn          bool     `json:"burn"`
	Claim         *string  `json:"claim,omitempty"`
	DefaultOutput *uint32  `json:"defaultOutput,omitempty"`
	Edicts        []Edict  `json:"edicts"`
	Etching       *Etching `json:"etching,omitempty"`
}

type Edict struct {
	Id     string `json:"id"`
	Amount string `json:"amount"`
	Output string `json:"output"`
}

type Etching struct {
	Divisibility uint8      `json:"divisibility"`
	Rune         *string    `json:"rune,omitempty"`
	Spacers      uint32     `json:"spacers"`
	Symbol       *string    `json:"symbol,omitempty"`
	Mint         *MintTerms `json:"mint,omitempty"`
}

type MintTerms struct {
	Deadline *uint32 `json:"deadline,omitempty"`
	Limit    *string `json:"limit,omitempty"`
	// LimitDecimal is Limit scaled by the etching's divisibility. Ignored on input.
	LimitDecimal *string `json:"limitDecimal,omitempty"`
	Term         *uint32 `json:"term,omitempty"`
}

func NewRunestone(src *runes.Runestone) *Runestone {
	if src == nil {
		return nil
	}
	result := &Runestone{
		Burn:          src.Burn,
		DefaultOutput: src.DefaultOutput,
		Edicts: lo.Map(src.Edicts, func(edict runes.Edict, _ int) Edict {
			return Edict{
				Id:     formatId(edict.Id),
				Amount: edict.Amount.String(),
				Output: edict.Output.String(),
			}
		}),
	}
	if src.Claim != nil {
		result.Claim = lo.ToPtr(formatId(*src.Claim))
	}
	if etching := src.Etching; etching != nil {
		result.Etching = &Etching{
			Divisibility: etching.Divisibility,
			Spacers:      etching.Spacers,
		}
		if etching.Rune != nil {
			result.Etching.Rune = lo.ToPtr(etching.Rune.String())
		}
		if etching.Symbol != nil {
			result.Etching.Symbol = lo.ToPtr(string(*etching.Symbol))
		}
		if mint := etching.Mint; mint != nil {
			result.Etching.Mint = &MintTerms{
				Deadline: mint.Deadline,
				Term:     mint.Term,
			}
			if mint.Limit != nil {
				result.Etching.Mint.Limit = lo.ToPtr(mint.Limit.String())
				result.Etching.Mint.LimitDecimal = lo.ToPtr(decimals.FormatAmount(*mint.Limit, etching.Divisibility))
			}
		}
	}
	return result
}

// ToRunestone parses r back into a runestone. Invalid fields are rejected, never clamped.
func (r Runestone) ToRunestone() (*runes.Runestone, error) {
	result := &runes.Runestone{
		Burn:          r.Burn,
		DefaultOutput: r.DefaultOutput,
		Edicts:        make([]runes.Edict, 0, len(r.Edicts)),
	}
	if r.Claim != nil {
		claim, err := parseId(*r.Claim)
		if err != nil {
			return nil, errors.Wrap(err, "claim")
		}
		result.Claim = &claim
	}
	for i, edict := range r.Edicts {
		id, err := parseId(edict.Id)
		if err != nil {
			return nil, errors.Wrapf(err, "edicts[%d].id", i)
		}
		amount, err := uint128.FromString(edict.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "edicts[%d].amount", i)
		}
		output, err := uint128.FromString(edict.Output)
		if err != nil {
			return nil, errors.Wrapf(err, "edicts[%d].output", i)
		}
		result.Edicts = append(result.Edicts, runes.Edict{Id: id, Amount: amount, Output: output})
	}

	if r.Etching == nil {
		return result, nil
	}
	if r.Etching.Divisibility > runes.MaxDivisibility {
		return nil, errors.Errorf("etching.divisibility must not exceed %d", runes.MaxDivisibility)
	}
	// decoders drop spacers that do not fit in a byte
	if r.Etching.Spacers > math.MaxUint8 {
		return nil, errors.Errorf("etching.spacers must not exceed %d", math.MaxUint8)
	}
	etching := &runes.Etching{
		Divisibility: r.Etching.Divisibility,
		Spacers:      r.Etching.Spacers,
	}
	if r.Etching.Rune != nil {
		runeName, err := runes.NewRuneFromString(*r.Etching.Rune)
		if err != nil {
			return nil, errors.Wrap(err, "etching.rune")
		}
		etching.Rune = &runeName
	}
	if r.Etching.Symbol != nil {
		symbol := *r.Etching.Symbol
		if utf8.RuneCountInString(symbol) != 1 || !utf8.ValidString(symbol) {
			return nil, errors.New("etching.symbol must be a single character")
		}
		etching.Symbol = lo.ToPtr([]rune(symbol)[0])
	}
	if mint := r.Etching.Mint; mint != nil {
		etching.Mint = &runes.MintTerms{
			Deadline: mint.Deadline,
			Term:     mint.Term,
		}
		if mint.Limit != nil {
			limit, err := uint128.FromString(*mint.Limit)
			if err != nil {
				return nil, errors.Wrap(err, "etching.mint.limit")
			}
			if limit.Cmp(runes.MaxLimit) > 0 {
				return nil, errors.Errorf("etching.mint.limit must not exceed %s", runes.MaxLimit)
			}
			etching.Mint.Limit = &limit
		}
	}
	result.Etching = etching
	return result, nil
}

// formatId renders ids that pack a rune id as "height/index", and others in decimal.
func formatId(id uint128.Uint128) string {
	if runeId, err := runes.NewRuneIdFromUint128(id); err == nil {
		return runeId.String()
	}
	return id.String()
}

func parseId(id string) (uint128.Uint128, error) {
	if runeId, err := runes.NewRuneIdFromString(id); err == nil {
		return runeId.Uint128(), nil
	}
	n, err := uint128.FromString(id)
	if err != nil {
		return uint128.Zero, errors.Wrapf(err, "%q is neither a rune id nor an integer", id)
	}
	return n, nil
}

type TxOutput struct {
	Index    int    `json:"index"`
	PkScript string `json:"pkScript"`
	Address  string `json:"address,omitempty"`
	Value    int64  `json:"value"`
}

type DecodeResult struct {
	TxHash          string     `json:"txHash"`
	BlockHeight     int64      `json:"blockHeight"`
	BlockHash       *string    `json:"blockHash,omitempty"`
	Index           uint32     `json:"index"`
	Outputs         []TxOutput `json:"outputs"`
	Runestone       *Runestone `json:"runestone"`
	Malformed       bool       `json:"malformed"`
	MalformedReason string     `json:"malformedReason,omitempty"`
}

func NewDecodeResult(src *usecase.DecodeResult, network common.Network) DecodeResult {
	tx := src.Transaction
	result := DecodeResult{
		TxHash:          tx.TxHash.String(),
		BlockHeight:     tx.BlockHeight,
		Index:           tx.Index,
		Runestone:       NewRunestone(src.Runestone),
		Malformed:       src.Malformed,
		MalformedReason: src.MalformedReason,
	}
	if tx.BlockHeight >= 0 {
		result.BlockHash = lo.ToPtr(tx.BlockHash.String())
	}
	result.Outputs = make([]TxOutput, 0, len(tx.TxOut))
	for i, out := range tx.TxOut {
		result.Outputs = append(result.Outputs, TxOutput{
			Index:    i,
			PkScript: hex.EncodeToString(out.PkScript),
			Address:  addressFromPkScript(out.PkScript, network),
			Value:    out.Value,
		})
	}
	return result
}

type BlockResult struct {
	Height     int64          `json:"height"`
	Hash       string         `json:"hash"`
	Timestamp  int64          `json:"timestamp"`
	Runestones []DecodeResult `json:"runestones"`
}

func NewBlockResult(src *usecase.BlockResult, network common.Network) BlockResult {
	return BlockResult{
		Height:    src.Header.Height,
		Hash:      src.Header.Hash.String(),
		Timestamp: src.Header.Timestamp.Unix(),
		Runestones: lo.Map(src.Runestones, func(item *usecase.DecodeResult, _ int) DecodeResult {
			return NewDecodeResult(item, network)
		}),
	}
}
