package httphandler

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getTransactionByHashRequest struct {
	Hash string `params:"hash"`
}

func (r getTransactionByHashRequest) Validate() error {
	var errList []error
	if len(r.Hash) == 0 {
		errList = append(errList, errs.NewPublicError("hash is required"))
	}
	if len(r.Hash) > chainhash.MaxHashStringSize {
		errList = append(errList, errs.NewPublicError(fmt.Sprintf("hash length must be less than or equal to %d bytes", chainhash.MaxHashStringSize)))
	}
	if len(errList) == 0 {
		return nil
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTransactionByHashResponse = common.HttpResponse[DecodeResult]

func (h *HttpHandler) GetTransactionByHash(ctx *fiber.Ctx) (err error) {
	var req getTransactionByHashRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	hash, err := chainhash.NewHashFromStr(req.Hash)
	if err != nil {
		return errs.NewPublicError("invalid transaction hash")
	}

	result, err := h.usecase.DecodeTransactionByHash(ctx.UserContext(), *hash)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return fiber.NewError(fiber.StatusNotFound, "transaction not found")
		}
		return errors.Wrap(err, "error during DecodeTransactionByHash")
	}

	resp := NewDecodeResult(result, h.network)
	return errors.WithStack(ctx.JSON(getTransactionByHashResponse{
		Result: &resp,
	}))
}
