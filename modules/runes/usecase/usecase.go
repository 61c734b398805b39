package usecase

import (
	"github.com/Cleverse/go-utilities/utils"
	"github.com/gaze-network/runestone/modules/runes/config"
	"github.com/gaze-network/runestone/modules/runes/datagateway"
)

const (
	DefaultBatchMaxQueries = 100
	DefaultScanConcurrency = 8
)

type Usecase struct {
	bitcoinDg       datagateway.BitcoinNodeDataGateway
	batchMaxQueries int
	scanConcurrency int
}

func New(bitcoinDg datagateway.BitcoinNodeDataGateway, conf config.Config) *Usecase {
	return &Usecase{
		bitcoinDg:       bitcoinDg,
		batchMaxQueries: utils.Default(conf.BatchMaxQueries, DefaultBatchMaxQueries),
		scanConcurrency: utils.Default(conf.ScanConcurrency, DefaultScanConcurrency),
	}
}

// BatchMaxQueries is the maximum number of hashes accepted by DecodeTransactionsByHashes.
func (u *Usecase) BatchMaxQueries() int {
	return u.batchMaxQueries
}
