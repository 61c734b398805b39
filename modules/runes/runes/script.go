package runes

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/pkg/bytecursor"
	"github.com/gaze-network/runestone/pkg/leb128"
	"github.com/gaze-network/uint128"
	"github.com/samber/lo"
)

// MagicNumber is the data push that marks an OP_RETURN output as a runestone.
var MagicNumber = []byte("RUNE_TEST")

const ErrInvalidScript = errs.ErrorKind("invalid runestone script")

// RunestonePayloadFromTx returns the concatenated data pushes of the first output whose script starts with
// OP_RETURN followed by MagicNumber. A nil payload and nil error means the transaction carries no runestone.
func RunestonePayloadFromTx(tx *types.Transaction) ([]byte, error) {
	for _, output := range tx.TxOut {
		tokenizer := txscript.MakeScriptTokenizer(0, output.PkScript)

		// payload must start with OP_RETURN
		if !tokenizer.Next() || tokenizer.Opcode() != txscript.OP_RETURN {
			continue
		}

		// next instruction must push the magic number
		if !tokenizer.Next() || !IsDataPushOpCode(tokenizer.Opcode()) || !bytes.Equal(tokenizer.Data(), MagicNumber) {
			continue
		}

		// this output is now selected to be the runestone output, remaining data pushes form the payload
		payload := make([]byte, 0)
		for tokenizer.Next() {
			if IsDataPushOpCode(tokenizer.Opcode()) {
				payload = append(payload, tokenizer.Data()...)
			}
		}
		if err := tokenizer.Err(); err != nil {
			return nil, errors.WithStack(errors.Join(err, ErrInvalidScript))
		}
		return payload, nil
	}

	// if not found, return nil
	return nil, nil
}

// DecodeIntegers reads LEB128 varints from payload until it is exhausted.
func DecodeIntegers(payload []byte) ([]uint128.Uint128, error) {
	integers := make([]uint128.Uint128, 0)
	cursor := bytecursor.New(payload)
	for !cursor.IsFinished() {
		n, err := leb128.ReadUint128(cursor)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode varint at offset %d", cursor.Position())
		}
		integers = append(integers, n)
	}
	return integers, nil
}

func IsDataPushOpCode(opCode byte) bool {
	// includes OP_0, OP_DATA_1 to OP_DATA_75, OP_PUSHDATA1, OP_PUSHDATA2, OP_PUSHDATA4
	return opCode <= txscript.OP_PUSHDATA4
}

// runestoneScript builds OP_RETURN <MagicNumber> <chunk>... with chunks of at most MaxScriptElementSize bytes.
// The script is assembled directly, so the total size is not capped by txscript.MaxScriptSize.
func runestoneScript(payload []byte) []byte {
	script := make([]byte, 0, 2+len(MagicNumber)+len(payload)+3*(len(payload)/MaxScriptElementSize+1))
	script = append(script, txscript.OP_RETURN)
	script = append(script, dataPush(MagicNumber)...)

	// chunk payload to MaxScriptElementSize
	for _, chunk := range lo.Chunk(payload, MaxScriptElementSize) {
		// single byte chunks stay data pushes instead of small integer opcodes
		script = append(script, dataPush(chunk)...)
	}
	return script
}

// dataPush returns the opcodes pushing data as-is.
func dataPush(data []byte) []byte {
	n := len(data)
	push := make([]byte, 0, n+3)
	switch {
	case n <= txscript.OP_DATA_75:
		push = append(push, byte(n))
	case n <= 0xff:
		push = append(push, txscript.OP_PUSHDATA1, byte(n))
	default:
		push = append(push, txscript.OP_PUSHDATA2)
		push = binary.LittleEndian.AppendUint16(push, uint16(n))
	}
	return append(push, data...)
}
