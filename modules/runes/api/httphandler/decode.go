package httphandler

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gofiber/fiber/v2"
)

type decodeRequest struct {
	RawTx string `json:"rawTx"`
}

func (r decodeRequest) Validate() error {
	if r.RawTx == "" {
		return errs.NewPublicError("rawTx is required")
	}
	return nil
}

type decodeResponse = common.HttpResponse[DecodeResult]

func (h *HttpHandler) Decode(ctx *fiber.Ctx) (err error) {
	var req decodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	raw, err := hex.DecodeString(req.RawTx)
	if err != nil {
		return errs.WithPublicMessage(err, "rawTx is not valid hex")
	}

	result, err := h.usecase.DecodeRawTransaction(ctx.UserContext(), raw)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return errs.NewPublicError("rawTx is not a valid transaction")
		}
		return errors.Wrap(err, "error during DecodeRawTransaction")
	}

	resp := NewDecodeResult(result, h.network)
	return errors.WithStack(ctx.JSON(decodeResponse{
		Result: &resp,
	}))
}
