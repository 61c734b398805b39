package common

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// ZeroHash is the block hash of transactions that are not yet confirmed.
var ZeroHash chainhash.Hash
