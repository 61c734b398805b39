package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/runestone/common/errs"
	"github.com/gaze-network/runestone/core/types"
	"github.com/gaze-network/runestone/internal/config"
	"github.com/gaze-network/runestone/modules/runes/api/httphandler"
	"github.com/gaze-network/runestone/modules/runes/datagateway"
	"github.com/gaze-network/runestone/modules/runes/runes"
	"github.com/gaze-network/uint128"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBitcoinNode struct {
	txs    map[chainhash.Hash]*types.Transaction
	blocks map[int64]*types.Block
}

func (f *fakeBitcoinNode) GetTransactionByHash(ctx context.Context, txHash chainhash.Hash) (*types.Transaction, error) {
	if tx, ok := f.txs[txHash]; ok {
		return tx, nil
	}
	return nil, errors.WithStack(errs.NotFound)
}

func (f *fakeBitcoinNode) GetBlockByHeight(ctx context.Context, height int64) (*types.Block, error) {
	if block, ok := f.blocks[height]; ok {
		return block, nil
	}
	return nil, errors.WithStack(errs.NotFound)
}

func (f *fakeBitcoinNode) GetBlockCount(ctx context.Context) (int64, error) {
	return int64(len(f.blocks)) - 1, nil
}

var p2wpkh = []byte{txscript.OP_0, txscript.OP_DATA_20, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}

var testRunestone = runes.Runestone{
	Edicts: []runes.Edict{
		{Id: runes.NewRuneId(840000, 3).Uint128(), Amount: uint128.From64(1000), Output: uint128.From64(0)},
	},
}

func newTestMsgTx(seed byte, pkScripts ...[]byte) *wire.MsgTx {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{seed}, 0), nil, nil))
	for _, pkScript := range pkScripts {
		tx.AddTxOut(wire.NewTxOut(546, pkScript))
	}
	return tx
}

// newTestNode returns a node with blocks 0 to 2, only block 1 carries a runestone.
func newTestNode() *fakeBitcoinNode {
	node := &fakeBitcoinNode{
		txs:    make(map[chainhash.Hash]*types.Transaction),
		blocks: make(map[int64]*types.Block),
	}
	for height := int64(0); height < 3; height++ {
		txs := []*wire.MsgTx{newTestMsgTx(byte(10 + height), p2wpkh)}
		if height == 1 {
			txs = append(txs, newTestMsgTx(20, p2wpkh, utils.Must(testRunestone.Encipher())))
		}
		block := types.ParseMsgBlock(&wire.MsgBlock{
			Header:       wire.BlockHeader{Version: 1, Timestamp: time.Unix(1700000000+height, 0)},
			Transactions: txs,
		}, height)
		node.blocks[height] = block
		for _, tx := range block.Transactions {
			node.txs[tx.TxHash] = tx
		}
	}
	return node
}

type testDialer struct {
	node   datagateway.BitcoinNodeDataGateway
	dialed int
}

func (d *testDialer) dial(ctx context.Context, conf config.BitcoinNodeClient) (datagateway.BitcoinNodeDataGateway, func(), error) {
	d.dialed++
	return d.node, func() {}, nil
}

func executeCommand(t *testing.T, cmd *cobra.Command, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDecodeCommand(t *testing.T) {
	node := newTestNode()
	runestoneTx := node.blocks[1].Transactions[1]

	t.Run("raw_hex_is_decoded_offline", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newTestMsgTx(3, p2wpkh, utils.Must(testRunestone.Encipher())).Serialize(&buf))

		dialer := &testDialer{node: node}
		out, err := executeCommand(t, newDecodeCommand(dialer.dial), nil, hex.EncodeToString(buf.Bytes()))
		require.NoError(t, err)
		assert.Zero(t, dialer.dialed)

		var result httphandler.DecodeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.False(t, result.Malformed)
		require.NotNil(t, result.Runestone)
		require.Len(t, result.Runestone.Edicts, 1)
		assert.Equal(t, "840000/3", result.Runestone.Edicts[0].Id)
	})
	t.Run("txid_is_fetched_from_node", func(t *testing.T) {
		dialer := &testDialer{node: node}
		out, err := executeCommand(t, newDecodeCommand(dialer.dial), nil, "--txid", runestoneTx.TxHash.String())
		require.NoError(t, err)
		assert.Equal(t, 1, dialer.dialed)

		var result httphandler.DecodeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, runestoneTx.TxHash.String(), result.TxHash)
		assert.Equal(t, int64(1), result.BlockHeight)
		assert.NotNil(t, result.Runestone)
	})
	t.Run("unknown_txid", func(t *testing.T) {
		dialer := &testDialer{node: node}
		_, err := executeCommand(t, newDecodeCommand(dialer.dial), nil, "--txid", chainhash.Hash{0xff}.String())
		assert.ErrorIs(t, err, errs.NotFound)
	})
	t.Run("invalid_arguments", func(t *testing.T) {
		testcases := []struct {
			name string
			args []string
		}{
			{name: "raw_hex_and_txid", args: []string{"00", "--txid", runestoneTx.TxHash.String()}},
			{name: "missing_input", args: []string{}},
			{name: "raw_hex_not_hex", args: []string{"zz"}},
			{name: "txid_not_hash", args: []string{"--txid", "xyz"}},
		}
		for _, tc := range testcases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				dialer := &testDialer{node: node}
				_, err := executeCommand(t, newDecodeCommand(dialer.dial), nil, tc.args...)
				assert.ErrorIs(t, err, errs.InvalidArgument)
				assert.Zero(t, dialer.dialed)
			})
		}
	})
}

func TestEncodeCommand(t *testing.T) {
	const (
		input          = `{"claim":"1"}`
		expectedScript = "6a0952554e455f54455354020e01"
	)

	decodeOutput := func(t *testing.T, out string) map[string]string {
		t.Helper()
		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		return result
	}

	t.Run("argument", func(t *testing.T) {
		out, err := executeCommand(t, NewEncodeCommand(), nil, input)
		require.NoError(t, err)
		result := decodeOutput(t, out)
		assert.Equal(t, "0e01", result["payload"])
		assert.Equal(t, expectedScript, result["script"])
	})
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "runestone.json")
		require.NoError(t, os.WriteFile(path, []byte(input), 0o600))

		out, err := executeCommand(t, NewEncodeCommand(), nil, "--file", path)
		require.NoError(t, err)
		assert.Equal(t, expectedScript, decodeOutput(t, out)["script"])
	})
	t.Run("stdin", func(t *testing.T) {
		out, err := executeCommand(t, NewEncodeCommand(), strings.NewReader(input), "-f", "-")
		require.NoError(t, err)
		assert.Equal(t, expectedScript, decodeOutput(t, out)["script"])
	})
	t.Run("invalid", func(t *testing.T) {
		for _, args := range [][]string{
			{},
			{`{"claim":`},
			{`{"etching":{"divisibility":39}}`},
		} {
			_, err := executeCommand(t, NewEncodeCommand(), nil, args...)
			assert.ErrorIs(t, err, errs.InvalidArgument, "args %q", args)
		}
	})
}

func TestScanCommand(t *testing.T) {
	node := newTestNode()

	decodeOutput := func(t *testing.T, out string) []httphandler.BlockResult {
		t.Helper()
		var result []httphandler.BlockResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		return result
	}

	t.Run("runestone_blocks_only", func(t *testing.T) {
		dialer := &testDialer{node: node}
		out, err := executeCommand(t, newScanCommand(dialer.dial), nil, "--from", "0", "--to", "2")
		require.NoError(t, err)
		blocks := decodeOutput(t, out)
		require.Len(t, blocks, 1)
		assert.Equal(t, int64(1), blocks[0].Height)
		assert.Len(t, blocks[0].Runestones, 1)
	})
	t.Run("all_blocks", func(t *testing.T) {
		dialer := &testDialer{node: node}
		out, err := executeCommand(t, newScanCommand(dialer.dial), nil, "--all")
		require.NoError(t, err)
		assert.Len(t, decodeOutput(t, out), 3)
	})
	t.Run("max_blocks_applies_to_default_range", func(t *testing.T) {
		dialer := &testDialer{node: node}
		_, err := executeCommand(t, newScanCommand(dialer.dial), nil, "--max-blocks", "2")
		assert.ErrorIs(t, err, errs.InvalidArgument)
	})
	t.Run("reversed_range_is_rejected_before_dialing", func(t *testing.T) {
		dialer := &testDialer{node: node}
		_, err := executeCommand(t, newScanCommand(dialer.dial), nil, "--from", "2", "--to", "1")
		assert.ErrorIs(t, err, errs.InvalidArgument)
		assert.Zero(t, dialer.dialed)
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, NewVersionCommand(), nil, "--module", "runes")
	require.NoError(t, err)
	assert.Equal(t, versions["runes"]+"\n", out)

	_, err = executeCommand(t, NewVersionCommand(), nil, "--module", "brc20")
	assert.ErrorIs(t, err, errs.Unsupported)
}
