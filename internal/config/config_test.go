package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gaze-network/runestone/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
network: testnet
bitcoin_node:
  host: localhost:18332
  user: bob
  disable_tls: true
http_server:
  port: 9000
  request_ip:
    trusted_proxies_header: X-Real-IP
modules:
  runes:
    api_handlers: [http]
    batch_max_queries: 50
`), 0o600))
	t.Setenv("BITCOIN_NODE_USER", "alice")

	conf := Parse(file)
	assert.Equal(t, common.NetworkTestnet, conf.Network)
	assert.Equal(t, "localhost:18332", conf.BitcoinNode.Host)
	assert.Equal(t, "alice", conf.BitcoinNode.User)
	assert.True(t, conf.BitcoinNode.DisableTLS)
	assert.Equal(t, 9000, conf.HTTPServer.Port)
	assert.Equal(t, "X-Real-IP", conf.HTTPServer.RequestIP.TrustedHeader)
	assert.Equal(t, []string{"http"}, conf.Modules.Runes.APIHandlers)
	assert.Equal(t, 50, conf.Modules.Runes.BatchMaxQueries)
	assert.Equal(t, conf, Load())
}
