package btcclient

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/gaze-network/runestone/core/types"
)

// Contract is the read-only view of a Bitcoin node needed to find runestones in confirmed and mempool transactions.
// Implementations return errs.NotFound when the node does not know the requested transaction or block.
type Contract interface {
	GetTransactionByHash(ctx context.Context, txHash chainhash.Hash) (*types.Transaction, error)
	GetBlockByHeight(ctx context.Context, height int64) (*types.Block, error)
	GetBlockCount(ctx context.Context) (int64, error)
}
