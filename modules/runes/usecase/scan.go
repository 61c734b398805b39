package usecase

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	cstream "github.com/planxnx/concurrent-stream"
	"github.com/samber/lo"
)

// BlockResult holds the transactions of a block that selected a runestone output.
type BlockResult struct {
	Header     types.BlockHeader
	Runestones []*DecodeResult
}

// DecodeBlock decodes every transaction of block and keeps the ones carrying a runestone, in block order.
func DecodeBlock(block *types.Block) *BlockResult {
	results := lo.Map(block.Transactions, func(tx *types.Transaction, _ int) *DecodeResult {
		return DecodeTransaction(tx)
	})
	return &BlockResult{
		Header: block.Header,
		Runestones: lo.Filter(results, func(result *DecodeResult, _ int) bool {
			return result.HasRunestone()
		}),
	}
}

func (u *Usecase) DecodeBlockByHeight(ctx context.Context, height int64) (*BlockResult, error) {
	block, err := u.bitcoinDg.GetBlockByHeight(ctx, height)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get block by height")
	}
	return DecodeBlock(block), nil
}

type scanResult struct {
	block *BlockResult
	err   error
}

// ScanBlocks decodes the runestones of every block from `from` to `to` inclusive, in height order.
//
//   - from: block height to start scanning, if negative, it will start from genesis block
//   - to: block height to stop scanning, if negative, it will scan until the latest block
//   - maxBlocks: maximum width of the resolved range, non-positive means unlimited
func (u *Usecase) ScanBlocks(ctx context.Context, from, to, maxBlocks int64) ([]*BlockResult, error) {
	from, to, skip, err := u.prepareRange(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to prepare scan range")
	}
	if skip {
		return []*BlockResult{}, nil
	}
	if maxBlocks > 0 && to-from+1 > maxBlocks {
		return nil, errors.Wrapf(errs.InvalidArgument, "range %d-%d exceeds %d blocks", from, to, maxBlocks)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Create parallel stream
	out := make(chan scanResult)
	stream := cstream.NewStream(ctx, u.scanConcurrency, out)

	// Wait for stream to finish and close out channel
	go func() {
		defer close(out)
		_ = stream.Wait()
	}()

	// Parallel fetch blocks from Bitcoin node until all heights are submitted or ctx is done
	go func() {
		defer stream.Close()
		for height := from; height <= to; height++ {
			height := height
			select {
			case <-ctx.Done():
				return
			default:
				stream.Go(func() scanResult {
					block, err := u.DecodeBlockByHeight(ctx, height)
					if err != nil {
						return scanResult{err: errors.Wrapf(err, "height %d", height)}
					}
					return scanResult{block: block}
				})
			}
		}
	}()

	results := make([]*BlockResult, 0, to-from+1)
	var scanErr error
	for result := range out {
		if result.err != nil {
			if scanErr == nil {
				scanErr = result.err
				logger.ErrorContext(ctx, "failed to scan block", slogx.Error(scanErr))
				// stop submitting new heights, remaining results are drained
				cancel()
			}
			continue
		}
		results = append(results, result.block)
	}
	if scanErr != nil {
		return nil, errors.WithStack(scanErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "scan cancelled")
	}

	slices.SortFunc(results, func(a, b *BlockResult) int {
		return int(a.Header.Height - b.Header.Height)
	})
	logger.DebugContext(ctx, "scanned blocks", slogx.Int64("from", from), slogx.Int64("to", to), slogx.Int("runestone_blocks", len(lo.Filter(results, func(r *BlockResult, _ int) bool {
		return len(r.Runestones) > 0
	}))))
	return results, nil
}

func (u *Usecase) prepareRange(ctx context.Context, fromHeight, toHeight int64) (start, end int64, skip bool, err error) {
	start = fromHeight
	end = toHeight

	// get current bitcoin block height
	latestBlockHeight, err := u.bitcoinDg.GetBlockCount(ctx)
	if err != nil {
		return -1, -1, false, errors.Wrap(err, "failed to get block count")
	}

	// set start to genesis block height
	if start < 0 {
		start = 0
	}

	// set end to current bitcoin block height if
	// - end is -1
	// - end is greater that current bitcoin block height
	if end < 0 || end > latestBlockHeight {
		end = latestBlockHeight
	}

	// if start is greater than end, skip this round
	if start > end {
		return -1, -1, true, nil
	}

	return start, end, false, nil
}

// ValidateScanRange rejects explicit ranges that are reversed or wider than maxBlocks before the node is contacted.
// Negative bounds are resolved and capped by ScanBlocks.
func ValidateScanRange(from, to int64, maxBlocks int64) error {
	if from >= 0 && to >= 0 && from > to {
		return errors.Wrapf(errs.InvalidArgument, "from (%d) must not exceed to (%d)", from, to)
	}
	if maxBlocks > 0 && from >= 0 && to >= 0 && to-from+1 > maxBlocks {
		return errors.Wrapf(errs.InvalidArgument, "cannot scan more than %d blocks at once", maxBlocks)
	}
	return nil
}
