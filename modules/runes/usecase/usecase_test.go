package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/modules/runes/config"
	"github.com/gaze-network/runestone/modules/runes/runes"
	"github.com/gaze-network/uint128"
)

type fakeBitcoinNode struct {
	mu        sync.Mutex
	txs       map[chainhash.Hash]*types.Transaction
	blocks    map[int64]*types.Block
	failAt    map[int64]error
	calls     int
	blockTime time.Duration
}

func newFakeBitcoinNode() *fakeBitcoinNode {
	return &fakeBitcoinNode{
		txs:    make(map[chainhash.Hash]*types.Transaction),
		blocks: make(map[int64]*types.Block),
		failAt: make(map[int64]error),
	}
}

func (f *fakeBitcoinNode) addBlock(height int64, txs ...*wire.MsgTx) *types.Block {
	msgBlock := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			Timestamp: time.Unix(1700000000+height, 0),
			Nonce:     uint32(height),
		},
		Transactions: txs,
	}
	block := types.ParseMsgBlock(msgBlock, height)
	f.blocks[height] = block
	for _, tx := range block.Transactions {
		f.txs[tx.TxHash] = tx
	}
	return block
}

func (f *fakeBitcoinNode) GetTransactionByHash(ctx context.Context, txHash chainhash.Hash) (*types.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	tx, ok := f.txs[txHash]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return tx, nil
}

func (f *fakeBitcoinNode) GetBlockByHeight(ctx context.Context, height int64) (*types.Block, error) {
	if f.blockTime > 0 {
		// finish out of order so callers must sort
		time.Sleep(f.blockTime / time.Duration(height%3+1))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.failAt[height]; ok {
		return nil, err
	}
	block, ok := f.blocks[height]
	if !ok {
		return nil, errors.WithStack(errs.NotFound)
	}
	return block, nil
}

func (f *fakeBitcoinNode) GetBlockCount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest int64 = -1
	for height := range f.blocks {
		latest = max(latest, height)
	}
	return latest, nil
}

func newTestUsecase(node *fakeBitcoinNode, conf config.Config) *Usecase {
	return New(node, conf)
}

// msgTx returns a transaction spending a unique outpoint with the given output scripts.
func msgTx(seed uint32, pkScripts ...[]byte) *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{byte(seed), byte(seed >> 8)}, seed), nil, nil))
	for _, pkScript := range pkScripts {
		tx.AddTxOut(wire.NewTxOut(0, pkScript))
	}
	return tx
}

func runestoneScript(runestone runes.Runestone) []byte {
	return utils.Must(runestone.Encipher())
}

func malformedRunestoneScript() []byte {
	return utils.Must(txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddData(runes.MagicNumber).
		AddData([]byte{0x80}).
		Script())
}

var p2wpkh = []byte{txscript.OP_0, txscript.OP_DATA_20, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

func sampleRunestone(amount uint64) runes.Runestone {
	return runes.Runestone{
		Edicts: []runes.Edict{
			{Id: runes.NewRuneId(840000, 1).Uint128(), Amount: uint128.From64(amount), Output: uint128.From64(1)},
		},
	}
}
