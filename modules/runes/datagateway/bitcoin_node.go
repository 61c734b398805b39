package datagateway

import (
	"github.com/gaze-network/runestone/pkg/btcclient"
)

// BitcoinNodeDataGateway provides the transactions and blocks decoded by the runes usecase.
type BitcoinNodeDataGateway interface {
	btcclient.Contract
}
