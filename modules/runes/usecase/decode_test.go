package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/modules/runes/config"
	"github.com/gaze-network/runestone/modules/runes/runes"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTransaction(t *testing.T) {
	t.Parallel()

	t.Run("no_runestone", func(t *testing.T) {
		tx := types.ParseMsgTx(msgTx(1, p2wpkh), 10, chainhash.Hash{}, 0)
		result := DecodeTransaction(tx)
		assert.False(t, result.HasRunestone())
		assert.Nil(t, result.Runestone)
		assert.False(t, result.Malformed)
	})
	t.Run("valid_runestone", func(t *testing.T) {
		tx := types.ParseMsgTx(msgTx(2, p2wpkh, runestoneScript(sampleRunestone(100))), 10, chainhash.Hash{}, 0)
		result := DecodeTransaction(tx)
		assert.True(t, result.HasRunestone())
		assert.False(t, result.Malformed)
		assert.Equal(t, runes.DecipherRunestone(tx), result.Runestone)
	})
	t.Run("malformed_runestone", func(t *testing.T) {
		tx := types.ParseMsgTx(msgTx(3, malformedRunestoneScript()), 10, chainhash.Hash{}, 0)
		result := DecodeTransaction(tx)
		assert.True(t, result.HasRunestone())
		assert.True(t, result.Malformed)
		assert.NotEmpty(t, result.MalformedReason)
		assert.Nil(t, result.Runestone)
		assert.Nil(t, runes.DecipherRunestone(tx))
	})
}

func TestDecodeRawTransaction(t *testing.T) {
	t.Parallel()
	uc := newTestUsecase(newFakeBitcoinNode(), config.Config{})

	tx := msgTx(4, runestoneScript(sampleRunestone(5)))
	var buf bytes.Buffer
	require.NoError(t, tx.Serialize(&buf))

	result, err := uc.DecodeRawTransaction(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tx.TxHash(), result.Transaction.TxHash)
	assert.Equal(t, int64(-1), result.Transaction.BlockHeight)
	require.NotNil(t, result.Runestone)
	assert.Equal(t, sampleRunestone(5).Edicts, result.Runestone.Edicts)

	_, err = uc.DecodeRawTransaction(context.Background(), []byte{0x01, 0x02})
	assert.ErrorIs(t, err, errs.InvalidArgument)
}

func TestDecodeTransactionsByHashes(t *testing.T) {
	t.Parallel()
	node := newFakeBitcoinNode()
	block := node.addBlock(100,
		msgTx(10, p2wpkh),
		msgTx(11, runestoneScript(sampleRunestone(1))),
		msgTx(12, runestoneScript(sampleRunestone(2))),
		msgTx(13, malformedRunestoneScript()),
	)
	uc := newTestUsecase(node, config.Config{BatchMaxQueries: 4, ScanConcurrency: 2})

	t.Run("keeps_order", func(t *testing.T) {
		hashes := lo.Map(lo.Reverse(append([]*types.Transaction{}, block.Transactions...)), func(tx *types.Transaction, _ int) chainhash.Hash {
			return tx.TxHash
		})
		results, err := uc.DecodeTransactionsByHashes(context.Background(), hashes)
		require.NoError(t, err)
		require.Len(t, results, len(hashes))
		for i, result := range results {
			assert.Equal(t, hashes[i], result.Transaction.TxHash)
		}
		assert.True(t, results[0].Malformed)
		assert.Equal(t, sampleRunestone(2).Edicts, results[1].Runestone.Edicts)
		assert.Equal(t, sampleRunestone(1).Edicts, results[2].Runestone.Edicts)
		assert.False(t, results[3].HasRunestone())
	})
	t.Run("too_many_hashes", func(t *testing.T) {
		_, err := uc.DecodeTransactionsByHashes(context.Background(), make([]chainhash.Hash, 5))
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("not_found", func(t *testing.T) {
		_, err := uc.DecodeTransactionsByHashes(context.Background(), []chainhash.Hash{block.Transactions[0].TxHash, {0xff}})
		assert.ErrorIs(t, err, errs.NotFound)
	})
}

func TestDecodeTransactionByHash(t *testing.T) {
	t.Parallel()
	node := newFakeBitcoinNode()
	block := node.addBlock(7, msgTx(20, p2wpkh), msgTx(21, runestoneScript(sampleRunestone(9))))
	uc := newTestUsecase(node, config.Config{})

	result, err := uc.DecodeTransactionByHash(context.Background(), block.Transactions[1].TxHash)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Transaction.BlockHeight)
	assert.Equal(t, uint32(1), result.Transaction.Index)
	require.NotNil(t, result.Runestone)

	_, err = uc.DecodeTransactionByHash(context.Background(), chainhash.Hash{0xee})
	assert.ErrorIs(t, err, errs.NotFound)
}
