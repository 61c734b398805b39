package cmd

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

// Version of the runestone service.
const Version = "v0.1.0"

func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "runestone",
		Long:         `Decode and encode Runestone payloads carried in Bitcoin OP_RETURN outputs`,
		SilenceUsage: true,
	}

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g. `./config.yaml`")
	flags.String("network", "mainnet", "network to connect to, E.g. `mainnet`, `testnet`, `signet` or `regtest`")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))

	// Initialize configuration and logger before any sub-command runs
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		conf := config.Parse(configFile)
		if err := logger.Init(conf.Logger); err != nil {
			logger.Error("Failed to initialize logger", slogx.Error(err), slogx.Any("config", conf.Logger))
			return errors.WithStack(err)
		}
		return nil
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewDecodeCommand(),
		NewEncodeCommand(),
		NewScanCommand(),
	)
	return cmd
}

func Execute(ctx context.Context) {
	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logger.Fatal("Failed to execute command", slogx.Error(err))
	}
}
