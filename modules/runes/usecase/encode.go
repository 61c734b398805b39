package usecase

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/modules/runes/runes"
)

type EncodeResult struct {
	Payload []byte
	Script  []byte
}

// Encode serializes runestone into its payload and OP_RETURN output script.
func (u *Usecase) Encode(runestone *runes.Runestone) (*EncodeResult, error) {
	if runestone == nil {
		return nil, errors.Wrap(errs.InvalidArgument, "runestone is required")
	}
	if runestone.Etching != nil && runestone.Etching.Divisibility > runes.MaxDivisibility {
		return nil, errors.Wrapf(errs.InvalidArgument, "divisibility must not exceed %d", runes.MaxDivisibility)
	}

	script, err := runestone.Encipher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encipher runestone")
	}
	return &EncodeResult{
		Payload: runestone.Payload(),
		Script:  script,
	}, nil
}
