package scripts

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"uwutoken"
	"uwutoken/log"
	"uwutoken/node"
	"uwutoken/nre"
	"uwutoken/registry"
	"uwutoken/test"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDevnetRuntime(t *testing.T, minFee uint64) (*nre.RPCRuntime, registry.Registry) {
	n, err := node.New(&node.Config{
		RPCConfig: &uwutoken.RPCConfig{Logger: log.Discard()},
		MinFee:    uint256.NewInt(minFee),
	}, test.NewMemStorage())
	require.NoError(t, err)
	ts := httptest.NewServer(n.RPCServer().Handler())
	t.Cleanup(ts.Close)
	reg := registry.NewMemory(DefaultNetwork)
	return nre.New(uwutoken.NewClient(ts.URL, 5*time.Second), reg, log.Discard()), reg
}

func TestDevnetDeployAndTransfer(t *testing.T) {
	ctx := context.Background()
	rt, reg := newDevnetRuntime(t, 0)
	cfg := DefaultConfig()

	buf := new(bytes.Buffer)
	deployed, err := Deploy(ctx, rt, cfg, buf)
	require.NoError(t, err)
	assert.Equal(t, "1337", deployed.TotalSupply.String())
	assert.Equal(t, "UwuToken", deployed.Name)
	assert.Equal(t, "UWU", deployed.Symbol)

	entry, err := registry.ResolveKind(reg, "uwu_token", registry.KindContract)
	require.NoError(t, err)
	assert.Equal(t, deployed.Address, entry.Address)

	res, err := Transfer(ctx, rt, cfg, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Equal(t, "1336.5", res.BalancesA[1].String())
	assert.Equal(t, "0.5", res.BalancesB[1].String())
	assert.Equal(t, nre.StatusAcceptedOnL2, res.Tx.Status)

	bal, err := Balance(ctx, rt, cfg, res.To)
	require.NoError(t, err)
	assert.Equal(t, "0.5", bal.String())
}

func TestDevnetRejectsZeroMaxFee(t *testing.T) {
	ctx := context.Background()
	rt, _ := newDevnetRuntime(t, 10)
	cfg := DefaultConfig()
	_, err := Deploy(ctx, rt, cfg, new(bytes.Buffer))
	require.NoError(t, err)

	_, err = Transfer(ctx, rt, cfg, new(bytes.Buffer))
	require.Error(t, err)
	assert.Equal(t, uwutoken.CodeFeeTooLow, uwutoken.RPCErrorCode(err))

	cfg.MaxFee = uint256.NewInt(10)
	res, err := Transfer(ctx, rt, cfg, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Equal(t, "0.5", res.BalancesB[1].String())
}
