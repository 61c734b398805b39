package api

import (
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/modules/runes/api/httphandler"
	"github.com/gaze-network/runestone/modules/runes/usecase"
)

func NewHTTPHandler(network common.Network, usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(network, usecase)
}
