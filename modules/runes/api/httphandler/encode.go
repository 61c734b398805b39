package httphandler

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gofiber/fiber/v2"
)

type encodeResult struct {
	Script  string `json:"script"`
	Payload string `json:"payload"`
}

type encodeResponse = common.HttpResponse[encodeResult]

func (h *HttpHandler) Encode(ctx *fiber.Ctx) (err error) {
	var req Runestone
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	runestone, err := req.ToRunestone()
	if err != nil {
		return errs.WithPublicMessage(err, "validation error")
	}

	result, err := h.usecase.Encode(runestone)
	if err != nil {
		if errors.Is(err, errs.InvalidArgument) {
			return errs.WithPublicMessage(err, "validation error")
		}
		return errors.Wrap(err, "error during Encode")
	}

	return errors.WithStack(ctx.JSON(encodeResponse{
		Result: &encodeResult{
			Script:  hex.EncodeToString(result.Script),
			Payload: hex.EncodeToString(result.Payload),
		},
	}))
}
