package cmd

import (
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/modules/runes/api/httphandler"
	runesusecase "github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type scanCmdOptions struct {
	From      int64
	To        int64
	MaxBlocks int64
	All       bool

	dial bitcoinNodeDialer
}

func NewScanCommand() *cobra.Command {
	return newScanCommand(dialBitcoinNode)
}

func newScanCommand(dial bitcoinNodeDialer) *cobra.Command {
	opts := &scanCmdOptions{dial: dial}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Decode the runestones of a range of blocks from the Bitcoin node",
		RunE: func(cmd *cobra.Command, args []string) error {
			return scanHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.From, "from", -1, "first block height, negative to start from genesis")
	flags.Int64Var(&opts.To, "to", -1, "last block height, negative to scan until the latest block")
	flags.Int64Var(&opts.MaxBlocks, "max-blocks", 1000, "maximum number of blocks in one scan, 0 for unlimited")
	flags.BoolVar(&opts.All, "all", false, "print blocks without runestones too")

	return cmd
}

func scanHandler(opts *scanCmdOptions, cmd *cobra.Command, _ []string) error {
	conf := config.Load()
	ctx := logger.WithContext(cmd.Context(), slogx.String("command", "scan"))

	if err := runesusecase.ValidateScanRange(opts.From, opts.To, opts.MaxBlocks); err != nil {
		return errors.WithStack(err)
	}

	node, release, err := opts.dial(ctx, conf.BitcoinNode)
	if err != nil {
		return errors.WithStack(err)
	}
	defer release()

	usecase := runesusecase.New(node, conf.Modules.Runes)
	blocks, err := usecase.ScanBlocks(ctx, opts.From, opts.To, opts.MaxBlocks)
	if err != nil {
		return errors.WithStack(err)
	}
	if !opts.All {
		blocks = lo.Filter(blocks, func(block *runesusecase.BlockResult, _ int) bool {
			return len(block.Runestones) > 0
		})
	}

	return printJSON(cmd.OutOrStdout(), lo.Map(blocks, func(block *runesusecase.BlockResult, _ int) httphandler.BlockResult {
		return httphandler.NewBlockResult(block, conf.Network)
	}))
}
