package sub

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"uwutoken/registry"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `
network: testnet
logger:
  level: DEBUG
storage:
  datadir: /tmp/uwu
rpcclient:
  apihost: 10.0.0.1:6000
  timeout: 30s
devnet:
  listen: 0.0.0.0:6000
  minfee: "0x10"
token:
  alias: my_token
  symbol: MEOW
  decimals: 6
  initial_supply: "1000000"
accounts:
  a: ALICE
  b: BOB
transfer:
  amount: "2.25"
  maxfee: "7"
`

func readTestConfig(t *testing.T, data string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(data)))
	return v
}

func TestParseClientConfig(t *testing.T) {
	v := readTestConfig(t, testConfigYaml)
	config, err := parseClientConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.1:6000", config.rpcClientApiHost)
	assert.Equal(t, 30*time.Second, config.rpcClientApiTimeOut)
	assert.Equal(t, "DEBUG", config.loggerParams.level)
	assert.Equal(t, filepath.Join("/tmp/uwu", defaultRegistryDir), config.storageParams.registryDir)

	cfg := config.scripts
	assert.Equal(t, "testnet", cfg.Network)
	assert.Equal(t, "my_token", cfg.TokenAlias)
	assert.Equal(t, "UwuToken", cfg.Name)
	assert.Equal(t, "MEOW", cfg.Symbol)
	assert.Equal(t, int32(6), cfg.Decimals)
	assert.Equal(t, "1000000", cfg.InitialSupply.String())
	assert.Equal(t, "ALICE", cfg.AccountA)
	assert.Equal(t, "BOB", cfg.AccountB)
	assert.Equal(t, "2.25", cfg.TransferAmount.String())
	assert.Equal(t, uint64(7), cfg.MaxFee.Uint64())

	config, err = parseClientConfig(v, "127.0.0.1:7000")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:7000", config.rpcClientApiHost)
}

func TestParseClientConfigDefaults(t *testing.T) {
	config, err := parseClientConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://"+defaultRPCClientAPIHost, config.rpcClientApiHost)
	assert.Equal(t, 60*time.Second, config.rpcClientApiTimeOut)
	assert.Equal(t, defaultLoggerLevel, config.loggerParams.level)

	cfg := config.scripts
	assert.Equal(t, "localhost", cfg.Network)
	assert.Equal(t, "uwu_token", cfg.TokenAlias)
	assert.Equal(t, int32(18), cfg.Decimals)
	assert.Equal(t, "1337", cfg.InitialSupply.String())
	assert.Equal(t, "0.5", cfg.TransferAmount.String())
	assert.True(t, cfg.MaxFee.IsZero())
}

func TestParseClientConfigErrors(t *testing.T) {
	_, err := parseClientConfig(readTestConfig(t, "rpcclient: {timeout: 1ms}"), "")
	assert.Error(t, err)
	_, err = parseClientConfig(readTestConfig(t, "transfer: {amount: \"-1\"}"), "")
	assert.Error(t, err)
	_, err = parseClientConfig(readTestConfig(t, "transfer: {maxfee: \"zz\"}"), "")
	assert.Error(t, err)
	_, err = parseClientConfig(readTestConfig(t, "token: {decimals: eighteen}"), "")
	assert.Error(t, err)

	cfg, err := parseScriptsConfig(readTestConfig(t, "token: {decimals: \"6\"}"))
	require.NoError(t, err)
	assert.Equal(t, int32(6), cfg.Decimals)
}

func TestParseDevnetConfig(t *testing.T) {
	config, err := parseDevnetConfig(readTestConfig(t, testConfigYaml))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:6000", config.listenAddr)
	assert.Equal(t, uint64(16), config.minFee.Uint64())
	assert.Equal(t, filepath.Join("/tmp/uwu", defaultDevnetDir), config.storageParams.devnetDir)

	datadir, rpcaddr, minfee = "/var/uwu", "127.0.0.1:1", "5"
	defer func() { datadir, rpcaddr, minfee = "", "", "" }()
	require.NoError(t, resetDevnetConfig(&config))
	assert.Equal(t, "127.0.0.1:1", config.listenAddr)
	assert.Equal(t, uint64(5), config.minFee.Uint64())
	assert.Equal(t, filepath.Join("/var/uwu", defaultDevnetDir), config.storageParams.devnetDir)
}

func TestSetupDataDirExpandsHome(t *testing.T) {
	home := os.Getenv("HOME")
	require.NoError(t, os.Setenv("HOME", "/home/uwu"))
	defer os.Setenv("HOME", home)
	params := storageParams{}
	setupDataDir(&params, "~/.uwutoken")
	assert.Equal(t, "/home/uwu/.uwutoken", params.dataDir)
	assert.Equal(t, "/home/uwu/.uwutoken/registry", params.registryDir)
}

func TestPrintEntries(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, printEntries(buf, []*registry.Entry{
		{Alias: "ACCOUNT_A", Kind: registry.KindAccount, Address: "0x01", CreatedAt: 0},
		{Alias: "uwu_token", Kind: registry.KindContract, Address: "0x02", Contract: "UwuToken"},
	}))
	out := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[0], "ALIAS"))
	assert.Contains(t, out[1], "ACCOUNT_A")
	assert.Contains(t, out[2], "UwuToken")
	assert.Contains(t, out[1], "1970-01-01T00:00:00Z")
}
