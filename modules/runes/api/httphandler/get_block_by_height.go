package httphandler

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gofiber/fiber/v2"
)

type getBlockByHeightRequest struct {
	Height string `params:"height"`
}

func (r getBlockByHeightRequest) Parse() (int64, error) {
	height, err := strconv.ParseInt(r.Height, 10, 64)
	if err != nil || height < 0 {
		return 0, errs.NewPublicError("height must be a non-negative integer")
	}
	return height, nil
}

type getBlockByHeightResponse = common.HttpResponse[BlockResult]

func (h *HttpHandler) GetBlockByHeight(ctx *fiber.Ctx) (err error) {
	var req getBlockByHeightRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	height, err := req.Parse()
	if err != nil {
		return errors.WithStack(err)
	}

	block, err := h.usecase.DecodeBlockByHeight(ctx.UserContext(), height)
	if err != nil {
		if errors.Is(err, errs.NotFound) {
			return fiber.NewError(fiber.StatusNotFound, "block not found")
		}
		return errors.Wrap(err, "error during DecodeBlockByHeight")
	}

	resp := NewBlockResult(block, h.network)
	return errors.WithStack(ctx.JSON(getBlockByHeightResponse{
		Result: &resp,
	}))
}
