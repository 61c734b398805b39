package btcclient

import (
	"bytes"
	"context"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
)

// Make sure to implement the Contract interface
var _ Contract = (*Client)(nil)

// Client fetches transactions and blocks from Bitcoin Core through JSON-RPC.
type Client struct {
	rpc *rpcclient.Client
}

func New(rpc *rpcclient.Client) *Client {
	return &Client{
		rpc: rpc,
	}
}

func (c *Client) GetTransactionByHash(ctx context.Context, txHash chainhash.Hash) (*types.Transaction, error) {
	result, err := call(ctx, func() (*btcjson.TxRawResult, error) {
		return c.rpc.GetRawTransactionVerboseAsync(&txHash).Receive()
	})
	if err != nil {
		return nil, errors.Wrapf(mapRPCError(err), "failed to get raw transaction %s", txHash)
	}

	raw, err := hex.DecodeString(result.Hex)
	if err != nil {
		return nil, errors.Wrap(err, "invalid raw transaction hex")
	}
	msgTx := wire.NewMsgTx(wire.TxVersion)
	if err := msgTx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize transaction")
	}

	// mempool transaction
	if result.BlockHash == "" {
		return types.ParseMsgTx(msgTx, -1, common.ZeroHash, 0), nil
	}

	blockHash, err := chainhash.NewHashFromStr(result.BlockHash)
	if err != nil {
		return nil, errors.Wrap(err, "invalid block hash")
	}
	block, err := call(ctx, func() (*btcjson.GetBlockVerboseResult, error) {
		return c.rpc.GetBlockVerboseAsync(blockHash).Receive()
	})
	if err != nil {
		return nil, errors.Wrapf(mapRPCError(err), "failed to get block %s", blockHash)
	}
	var index uint32
	for i, txid := range block.Tx {
		if txid == result.Txid {
			index = uint32(i)
			break
		}
	}
	return types.ParseMsgTx(msgTx, block.Height, *blockHash, index), nil
}

func (c *Client) GetBlockByHeight(ctx context.Context, height int64) (*types.Block, error) {
	blockHash, err := call(ctx, func() (*chainhash.Hash, error) {
		return c.rpc.GetBlockHashAsync(height).Receive()
	})
	if err != nil {
		return nil, errors.Wrapf(mapRPCError(err), "failed to get block hash at height %d", height)
	}
	msgBlock, err := call(ctx, func() (*wire.MsgBlock, error) {
		return c.rpc.GetBlockAsync(blockHash).Receive()
	})
	if err != nil {
		return nil, errors.Wrapf(mapRPCError(err), "failed to get block %s", blockHash)
	}
	return types.ParseMsgBlock(msgBlock, height), nil
}

func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	count, err := call(ctx, func() (int64, error) {
		return c.rpc.GetBlockCountAsync().Receive()
	})
	if err != nil {
		return 0, errors.Wrap(mapRPCError(err), "failed to get block count")
	}
	return count, nil
}

// call runs a blocking RPC request and gives up waiting when ctx is done.
func call[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := fn()
		ch <- result{value, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, errors.WithStack(ctx.Err())
	case r := <-ch:
		return r.value, r.err
	}
}

// mapRPCError marks "unknown transaction" and "height out of range" node errors as errs.NotFound.
func mapRPCError(err error) error {
	var rpcErr *btcjson.RPCError
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case btcjson.ErrRPCNoTxInfo, btcjson.ErrRPCInvalidParameter:
			return errors.WithStack(errors.Join(err, errs.NotFound))
		}
	}
	return errors.WithStack(err)
}
