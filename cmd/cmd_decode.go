package cmd

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/modules/runes/api/httphandler"
	runesusecase "github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/spf13/cobra"
)

type decodeCmdOptions struct {
	TxId string

	dial bitcoinNodeDialer
}

func NewDecodeCommand() *cobra.Command {
	return newDecodeCommand(dialBitcoinNode)
}

func newDecodeCommand(dial bitcoinNodeDialer) *cobra.Command {
	opts := &decodeCmdOptions{dial: dial}

	cmd := &cobra.Command{
		Use:   "decode [raw tx hex]",
		Short: "Decode the runestone of a raw transaction, or of a transaction fetched from the Bitcoin node",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return decodeHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.TxId, "txid", "", "fetch the transaction from the Bitcoin node instead of reading raw hex")

	return cmd
}

func decodeHandler(opts *decodeCmdOptions, cmd *cobra.Command, args []string) error {
	conf := config.Load()
	ctx := cmd.Context()

	var result *runesusecase.DecodeResult
	switch {
	case opts.TxId != "" && len(args) > 0:
		return errors.Wrap(errs.InvalidArgument, "either raw tx hex or --txid is accepted, not both")
	case opts.TxId != "":
		hash, err := chainhash.NewHashFromStr(opts.TxId)
		if err != nil {
			return errors.Wrap(errors.Join(err, errs.InvalidArgument), "invalid --txid")
		}
		node, release, err := opts.dial(ctx, conf.BitcoinNode)
		if err != nil {
			return errors.WithStack(err)
		}
		defer release()

		usecase := runesusecase.New(node, conf.Modules.Runes)
		result, err = usecase.DecodeTransactionByHash(ctx, *hash)
		if err != nil {
			return errors.WithStack(err)
		}
	case len(args) == 1:
		raw, err := hex.DecodeString(strings.TrimSpace(args[0]))
		if err != nil {
			return errors.Wrap(errors.Join(err, errs.InvalidArgument), "raw tx is not valid hex")
		}
		// raw transactions are decoded offline
		usecase := runesusecase.New(nil, conf.Modules.Runes)
		result, err = usecase.DecodeRawTransaction(ctx, raw)
		if err != nil {
			return errors.WithStack(err)
		}
	default:
		return errors.Wrap(errs.InvalidArgument, "raw tx hex or --txid is required")
	}

	return printJSON(cmd.OutOrStdout(), httphandler.NewDecodeResult(result, conf.Network))
}
