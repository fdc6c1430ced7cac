package node

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"uwutoken"
	"uwutoken/api"
	"uwutoken/common"
	"uwutoken/devnet"
	"uwutoken/log"
	"uwutoken/test"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T, minFee uint64) (*Node, *uwutoken.Client) {
	n, err := New(&Config{
		RPCConfig: &uwutoken.RPCConfig{Logger: log.Discard()},
		MinFee:    uint256.NewInt(minFee),
	}, test.NewMemStorage())
	require.NoError(t, err)
	ts := httptest.NewServer(n.RPCServer().Handler())
	t.Cleanup(ts.Close)
	return n, uwutoken.NewClient(ts.URL, 5*time.Second)
}

func TestNodeRegistersServices(t *testing.T) {
	n, _ := newTestNode(t, 0)
	methods := n.RPCServer().Methods()
	for _, m := range []string{
		"Account.Deploy", "Account.Execute", "Account.GetNonce",
		"Contract.Deploy", "Contract.Call", "Contract.GetClass",
		"Transaction.Get", "Node.Info",
	} {
		assert.Contains(t, methods, m)
	}
}

func TestNodeTokenOverRPC(t *testing.T) {
	_, cli := newTestNode(t, 0)
	ctx := context.Background()

	acct := &api.AccountResp{}
	require.NoError(t, cli.CallMethod(ctx, "Account.Deploy", &api.AccountDeployArgs{Salt: "ACCOUNT_A"}, acct))

	name, _ := common.StrToFelt("UwuToken")
	symbol, _ := common.StrToFelt("UWU")
	deployed := &api.ContractDeployResp{}
	require.NoError(t, cli.CallMethod(ctx, "Contract.Deploy", &api.ContractDeployArgs{
		Contract: devnet.TokenClassName,
		Calldata: []string{common.FeltHex(name), common.FeltHex(symbol), "0x12", "0x64", "0x0", acct.Address},
	}, deployed))

	var result []string
	require.NoError(t, cli.CallMethod(ctx, "Contract.Call", &api.ContractCallArgs{
		ContractAddress:    deployed.ContractAddress,
		EntryPointSelector: common.SelectorHex("balanceOf"),
		Calldata:           []string{acct.Address},
	}, &result))
	assert.Equal(t, []string{"0x64", "0x0"}, result)

	tx := &api.TxResp{}
	require.NoError(t, cli.CallMethod(ctx, "Account.Execute", &api.AccountExecuteArgs{
		Account:            acct.Address,
		ContractAddress:    deployed.ContractAddress,
		EntryPointSelector: common.SelectorHex("transfer"),
		Calldata:           []string{"0x5", "0x10", "0x0"},
		MaxFee:             "0x0",
	}, tx))
	assert.Equal(t, devnet.StatusAcceptedOnL2, tx.Status)

	rec := &devnet.TxRecord{}
	require.NoError(t, cli.CallMethod(ctx, "Transaction.Get", &api.TransactionGetArgs{TxHash: tx.TxHash}, rec))
	assert.Equal(t, devnet.TxTypeInvoke, rec.Type)

	var nonce string
	require.NoError(t, cli.CallMethod(ctx, "Account.GetNonce", &api.AccountGetNonceArgs{Account: acct.Address}, &nonce))
	assert.Equal(t, "1", nonce)

	var class string
	require.NoError(t, cli.CallMethod(ctx, "Contract.GetClass", &api.ContractGetClassArgs{ContractAddress: deployed.ContractAddress}, &class))
	assert.Equal(t, devnet.TokenClassName, class)
}

func TestNodeErrorCodes(t *testing.T) {
	_, cli := newTestNode(t, 10)
	ctx := context.Background()

	acct := &api.AccountResp{}
	require.NoError(t, cli.CallMethod(ctx, "Account.Deploy", &api.AccountDeployArgs{Salt: "A"}, acct))
	deployed := &api.ContractDeployResp{}
	require.NoError(t, cli.CallMethod(ctx, "Contract.Deploy", &api.ContractDeployArgs{
		Contract: devnet.TokenClassName,
		Calldata: []string{"0x1", "0x2", "0x12", "0x64", "0x0", acct.Address},
	}, deployed))

	exec := func(maxFee string, calldata ...string) error {
		return cli.CallMethod(ctx, "Account.Execute", &api.AccountExecuteArgs{
			Account:            acct.Address,
			ContractAddress:    deployed.ContractAddress,
			EntryPointSelector: common.SelectorHex("transfer"),
			Calldata:           calldata,
			MaxFee:             maxFee,
		}, nil)
	}
	assert.Equal(t, uwutoken.CodeFeeTooLow, uwutoken.RPCErrorCode(exec("0x0", "0x5", "0x1", "0x0")))
	assert.Equal(t, uwutoken.CodeExecutionFailed, uwutoken.RPCErrorCode(exec("0xa", "0x5", "0x1000", "0x0")))
	assert.Equal(t, uwutoken.CodeInvalidParams, uwutoken.RPCErrorCode(exec("0xa", "zz")))

	err := cli.CallMethod(ctx, "Contract.Call", &api.ContractCallArgs{
		ContractAddress:    "0x99",
		EntryPointSelector: common.SelectorHex("name"),
	}, nil)
	assert.Equal(t, uwutoken.CodeUnknownContract, uwutoken.RPCErrorCode(err))

	err = cli.CallMethod(ctx, "Contract.Call", &api.ContractCallArgs{
		ContractAddress:    deployed.ContractAddress,
		EntryPointSelector: common.SelectorHex("mint"),
	}, nil)
	assert.Equal(t, uwutoken.CodeUnknownEntry, uwutoken.RPCErrorCode(err))

	err = cli.CallMethod(ctx, "Transaction.Get", &api.TransactionGetArgs{TxHash: "0xdead"}, nil)
	assert.Equal(t, uwutoken.CodeUnknownContract, uwutoken.RPCErrorCode(err))

	info := &api.NodeInfoResp{}
	require.NoError(t, cli.CallMethod(ctx, "Node.Info", nil, info))
	assert.Equal(t, "0xa", info.MinFee)
	assert.Equal(t, []string{devnet.TokenClassName}, info.Classes)
}

func TestNodeStartStop(t *testing.T) {
	n, err := New(&Config{
		RPCConfig: &uwutoken.RPCConfig{ListenAddr: "127.0.0.1:0", Logger: log.Discard()},
	}, test.NewMemStorage())
	require.NoError(t, err)
	errc := n.Start()
	require.Eventually(t, func() bool { return n.Addr() != nil }, 2*time.Second, 10*time.Millisecond)

	cli := uwutoken.NewClient("http://"+n.Addr().String(), time.Second)
	info := &api.NodeInfoResp{}
	require.NoError(t, cli.CallMethod(context.Background(), "Node.Info", nil, info))
	assert.Equal(t, uwutoken.VersionString(), info.Version)

	require.NoError(t, n.Stop())
	_, open := <-errc
	assert.False(t, open)
}
