package btcutils

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common"
	"github.com/gaze-network/runestone/common/errs"
)

// PkScriptToAddress returns the address paid by pkScript.
// Scripts without exactly one standard address, such as OP_RETURN outputs, return errs.NotFound.
func PkScriptToAddress(pkScript []byte, network common.Network) (string, error) {
	params := network.ChainParams()
	if params == nil {
		return "", errors.Wrapf(errs.Unsupported, "network %q", network)
	}
	_, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil {
		return "", errors.Wrap(err, "error extracting addresses from pkscript")
	}
	if len(addrs) != 1 {
		return "", errors.Wrapf(errs.NotFound, "pkscript pays to %d addresses", len(addrs))
	}
	return addrs[0].EncodeAddress(), nil
}
