package cmd

import (
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/modules/runes/api/httphandler"
	runesusecase "github.com/gaze-network/runestone/modules/runes/usecase"
	"github.com/spf13/cobra"
)

type encodeCmdOptions struct {
	File string
}

func NewEncodeCommand() *cobra.Command {
	opts := &encodeCmdOptions{}

	cmd := &cobra.Command{
		Use:   "encode [runestone json]",
		Short: "Encode a JSON runestone into an OP_RETURN output script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return encodeHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.File, "file", "f", "", "read the runestone JSON from a file, `-` for stdin")

	return cmd
}

func encodeHandler(opts *encodeCmdOptions, cmd *cobra.Command, args []string) error {
	conf := config.Load()

	var input io.Reader
	switch {
	case len(args) == 1:
		input = strings.NewReader(args[0])
	case opts.File == "-":
		input = cmd.InOrStdin()
	case opts.File != "":
		f, err := os.Open(opts.File)
		if err != nil {
			return errors.Wrap(err, "can't open runestone file")
		}
		defer f.Close()
		input = f
	default:
		return errors.Wrap(errs.InvalidArgument, "runestone JSON or --file is required")
	}

	var req httphandler.Runestone
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		return errors.Wrap(errors.Join(err, errs.InvalidArgument), "invalid runestone JSON")
	}
	runestone, err := req.ToRunestone()
	if err != nil {
		return errors.Wrap(errors.Join(err, errs.InvalidArgument), "invalid runestone")
	}

	result, err := runesusecase.New(nil, conf.Modules.Runes).Encode(runestone)
	if err != nil {
		return errors.WithStack(err)
	}

	return printJSON(cmd.OutOrStdout(), map[string]string{
		"script":  hex.EncodeToString(result.Script),
		"payload": hex.EncodeToString(result.Payload),
	})
}
