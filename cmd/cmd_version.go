package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/modules/runes"
	"github.com/spf13/cobra"
)

var versions = map[string]string{
	"":      Version,
	"runes": runes.Version,
}

type versionCmdOptions struct {
	Module string
}

func NewVersionCommand() *cobra.Command {
	opts := &versionCmdOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show runestone version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return versionHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Module, "module", "", `Show version of a specific module. E.g. "runes"`)

	return cmd
}

func versionHandler(opts *versionCmdOptions, cmd *cobra.Command, _ []string) error {
	version, ok := versions[opts.Module]
	if !ok {
		return errors.Wrapf(errs.Unsupported, "invalid module name %q", opts.Module)
	}
	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}
