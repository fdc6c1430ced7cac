package nre

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/log"
	"uwutoken/node"
	"uwutoken/registry"
	"uwutoken/test"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRuntime(t *testing.T) (*RPCRuntime, registry.Registry) {
	n, err := node.New(&node.Config{
		RPCConfig: &uwutoken.RPCConfig{Logger: log.Discard()},
	}, test.NewMemStorage())
	require.NoError(t, err)
	ts := httptest.NewServer(n.RPCServer().Handler())
	t.Cleanup(ts.Close)
	reg := registry.NewMemory("localhost")
	return New(uwutoken.NewClient(ts.URL, 5*time.Second), reg, log.Discard()), reg
}

func tokenArgs(t *testing.T, owner string) []*uint256.Int {
	name, err := common.StrToFelt("UwuToken")
	require.NoError(t, err)
	symbol, err := common.StrToFelt("UWU")
	require.NoError(t, err)
	return []*uint256.Int{name, symbol, uint256.NewInt(18), uint256.NewInt(1000), new(uint256.Int), common.MustFromHex(owner)}
}

func TestGetOrDeployAccount(t *testing.T) {
	ctx := context.Background()
	rt, reg := newTestRuntime(t)

	a, err := rt.GetOrDeployAccount(ctx, "ACCOUNT_A")
	require.NoError(t, err)
	assert.Equal(t, "ACCOUNT_A", a.Alias())
	assert.Len(t, a.Address(), 66)

	entry, err := reg.Resolve("ACCOUNT_A")
	require.NoError(t, err)
	assert.Equal(t, registry.KindAccount, entry.Kind)
	assert.Equal(t, a.Address(), entry.Address)

	again, err := rt.GetOrDeployAccount(ctx, "ACCOUNT_A")
	require.NoError(t, err)
	assert.Equal(t, a.Address(), again.Address())
}

func TestDeployCallSend(t *testing.T) {
	ctx := context.Background()
	rt, _ := newTestRuntime(t)
	a, err := rt.GetOrDeployAccount(ctx, "ACCOUNT_A")
	require.NoError(t, err)
	b, err := rt.GetOrDeployAccount(ctx, "ACCOUNT_B")
	require.NoError(t, err)

	address, tx, err := rt.Deploy(ctx, DefaultContractName, tokenArgs(t, a.Address()), "uwu_token")
	require.NoError(t, err)
	assert.NotEmpty(t, tx.Hash)

	got, _, err := rt.GetDeployment(ctx, "uwu_token")
	require.NoError(t, err)
	assert.Equal(t, address, got)

	name, err := rt.Call(ctx, "uwu_token", "name", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x557775546f6b656e"}, name)

	info, err := a.Send(ctx, address, "transfer", []*uint256.Int{common.MustFromHex(b.Address()), uint256.NewInt(250), new(uint256.Int)}, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusAcceptedOnL2, info.Status)

	bal, err := rt.Call(ctx, address, "balanceOf", []*uint256.Int{common.MustFromHex(b.Address())})
	require.NoError(t, err)
	assert.Equal(t, []string{"0xfa", "0x0"}, bal)
}

func TestRuntimeErrors(t *testing.T) {
	ctx := context.Background()
	rt, _ := newTestRuntime(t)

	_, _, err := rt.GetDeployment(ctx, "uwu_token")
	assert.ErrorIs(t, err, registry.ErrNotFound)

	_, err = rt.Call(ctx, "uwu_token", "name", nil)
	assert.ErrorIs(t, err, registry.ErrNotFound)

	a, err := rt.GetOrDeployAccount(ctx, "ACCOUNT_A")
	require.NoError(t, err)
	_, _, err = rt.GetDeployment(ctx, "ACCOUNT_A")
	assert.ErrorIs(t, err, registry.ErrKindMismatch)

	_, _, err = rt.Deploy(ctx, "NoSuchClass", nil, "x")
	assert.Equal(t, uwutoken.CodeExecutionFailed, uwutoken.RPCErrorCode(err))

	_, err = rt.Call(ctx, a.Address(), "name", nil)
	assert.Equal(t, uwutoken.CodeUnknownContract, uwutoken.RPCErrorCode(err))
}
