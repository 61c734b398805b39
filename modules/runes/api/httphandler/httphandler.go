package httphandler

import (
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/gaze-network/runestone/pkg/btcutils"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
)

type HttpHandler struct {
	usecase *usecase.Usecase
	network common.Network
}

func New(network common.Network, usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
		network: network,
	}
}

// addressFromPkScript returns an empty string for non-standard scripts, including runestone outputs.
func addressFromPkScript(pkScript []byte, network common.Network) string {
	address, err := btcutils.PkScriptToAddress(pkScript, network)
	if err != nil {
		logger.Debug("unable to extract address from pkscript", slogx.Error(err))
		return ""
	}
	return address
}
