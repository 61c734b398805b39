package httphandler

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type decodeBatchRequest struct {
	TxHashes []string `json:"txHashes"`
}

func (r decodeBatchRequest) Validate(maxQueries int) error {
	var errList []error
	if len(r.TxHashes) == 0 {
		errList = append(errList, errors.New("txHashes cannot be empty"))
	}
	if len(r.TxHashes) > maxQueries {
		errList = append(errList, errors.Errorf("cannot query more than %d txHashes", maxQueries))
	}
	for i, hash := range r.TxHashes {
		if len(hash) != chainhash.MaxHashStringSize {
			errList = append(errList, errors.Errorf("txHashes[%d]: %q is not a valid transaction hash", i, hash))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type decodeBatchResult struct {
	List []DecodeResult `json:"list"`
}

type decodeBatchResponse = common.HttpResponse[decodeBatchResult]

func (h *HttpHandler) DecodeBatch(ctx *fiber.Ctx) (err error) {
	var req decodeBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(h.usecase.BatchMaxQueries()); err != nil {
		return errors.WithStack(err)
	}

	hashes := make([]chainhash.Hash, 0, len(req.TxHashes))
	for i, s := range req.TxHashes {
		hash, err := chainhash.NewHashFromStr(s)
		if err != nil {
			return errs.NewPublicError(fmt.Sprintf("txHashes[%d]: invalid transaction hash", i))
		}
		hashes = append(hashes, *hash)
	}

	results, err := h.usecase.DecodeTransactionsByHashes(ctx.UserContext(), hashes)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return errors.Wrap(err, "error during DecodeTransactionsByHashes")
	}

	return errors.WithStack(ctx.JSON(decodeBatchResponse{
		Result: &decodeBatchResult{
			List: lo.Map(results, func(item *usecase.DecodeResult, _ int) DecodeResult {
				return NewDecodeResult(item, h.network)
			}),
		},
	}))
}
