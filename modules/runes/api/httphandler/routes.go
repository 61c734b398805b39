package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/runestone")

	r.Post("/decode", h.Decode)
	r.Post("/decode/batch", h.DecodeBatch)
	r.Get("/tx/:hash", h.GetTransactionByHash)
	r.Get("/block/:height", h.GetBlockByHeight)
	r.Post("/encode", h.Encode)
	return nil
}
