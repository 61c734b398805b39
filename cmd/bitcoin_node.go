package cmd

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/modules/runes/datagateway"
	"github.com/gaze-network/runestone/pkg/btcclient"
	"github.com/gaze-network/runestone/pkg/logger"
	"github.com/gaze-network/runestone/pkg/logger/slogx"
)

// newBitcoinRPCClient connects to Bitcoin Core over HTTP POST and checks the connection.
func newBitcoinRPCClient(ctx context.Context, conf config.BitcoinNodeClient) (*rpcclient.Client, error) {
	client, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         conf.Host,
		User:         conf.User,
		Pass:         conf.Pass,
		DisableTLS:   conf.DisableTLS,
		HTTPPostMode: true,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Bitcoin node configuration")
	}

	start := time.Now()
	logger.InfoContext(ctx, "Connecting to Bitcoin Core RPC Server...", slogx.String("host", conf.Host))
	if err := client.Ping(); err != nil {
		return nil, errors.Wrapf(err, "can't connect to Bitcoin Core RPC Server %q", conf.Host)
	}
	logger.InfoContext(ctx, "Connected to Bitcoin Core RPC Server", slogx.Duration("latency", time.Since(start)))
	return client, nil
}

// bitcoinNodeDialer opens the node gateway used by one-shot commands. The returned func releases it.
type bitcoinNodeDialer func(ctx context.Context, conf config.BitcoinNodeClient) (datagateway.BitcoinNodeDataGateway, func(), error)

func dialBitcoinNode(ctx context.Context, conf config.BitcoinNodeClient) (datagateway.BitcoinNodeDataGateway, func(), error) {
	rpc, err := newBitcoinRPCClient(ctx, conf)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return btcclient.New(rpc), rpc.Shutdown, nil
}
