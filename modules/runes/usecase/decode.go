package usecase

import (
	"context"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/modules/runes/runes"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"golang.org/x/sync/errgroup"
)

// DecodeResult is the outcome of looking for a runestone in a transaction.
// Runestone is nil when the transaction carries none, or when its payload is malformed.
type DecodeResult struct {
	Transaction     *types.Transaction
	Runestone       *runes.Runestone
	Malformed       bool
	MalformedReason string
}

// HasRunestone reports whether the transaction selected a runestone output, even a malformed one.
func (r *DecodeResult) HasRunestone() bool {
	return r.Runestone != nil || r.Malformed
}

// DecodeTransaction decodes the runestone of tx. It agrees with runes.DecipherRunestone and additionally
// reports why a selected runestone output could not be decoded.
func DecodeTransaction(tx *types.Transaction) *DecodeResult {
	result := &DecodeResult{Transaction: tx}

	payload, err := runes.RunestonePayloadFromTx(tx)
	if err != nil {
		result.Malformed = true
		result.MalformedReason = err.Error()
		return result
	}
	if payload == nil {
		return result
	}

	integers, err := runes.DecodeIntegers(payload)
	if err != nil {
		result.Malformed = true
		result.MalformedReason = err.Error()
		return result
	}
	result.Runestone = runes.RunestoneFromIntegers(integers)
	return result
}

func (u *Usecase) DecodeRawTransaction(ctx context.Context, raw []byte) (*DecodeResult, error) {
	tx, err := btcutil.NewTxFromBytes(raw)
	if err != nil {
		return nil, errors.Wrap(errors.Join(err, errs.InvalidArgument), "cannot parse raw transaction")
	}

	result := DecodeTransaction(types.ParseMsgTx(tx.MsgTx(), -1, common.ZeroHash, 0))
	if result.Malformed {
		logger.DebugContext(ctx, "malformed runestone", slogx.Stringer("tx_hash", tx.Hash()), slogx.String("reason", result.MalformedReason))
	}
	return result, nil
}

func (u *Usecase) DecodeTransactionByHash(ctx context.Context, txHash chainhash.Hash) (*DecodeResult, error) {
	tx, err := u.bitcoinDg.GetTransactionByHash(ctx, txHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction by hash")
	}
	return DecodeTransaction(tx), nil
}

// DecodeTransactionsByHashes decodes transactions concurrently. Results keep the order of txHashes.
func (u *Usecase) DecodeTransactionsByHashes(ctx context.Context, txHashes []chainhash.Hash) ([]*DecodeResult, error) {
	if len(txHashes) > u.batchMaxQueries {
		return nil, errors.Wrapf(errs.InvalidArgument, "cannot exceed %d transaction hashes", u.batchMaxQueries)
	}

	results := make([]*DecodeResult, len(txHashes))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(u.scanConcurrency)
	for i, txHash := range txHashes {
		i, txHash := i, txHash
		eg.Go(func() error {
			result, err := u.DecodeTransactionByHash(ectx, txHash)
			if err != nil {
				return errors.Wrapf(err, "txHashes[%d]: %s", i, txHash)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.WithStack(err)
	}
	return results, nil
}
