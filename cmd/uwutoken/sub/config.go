// Copyright 2018 The uwutoken Authors
// This file is part of the uwutoken library.
//
// The uwutoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The uwutoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the uwutoken library. If not, see <https://mit-license.org/>.

package sub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"uwutoken/common"
	"uwutoken/scripts"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	defaultConfigFile       = "./config.yml"
	defaultStorageDir       = ".uwutoken"
	defaultDevnetDir        = "devnet"
	defaultRegistryDir      = "registry"
	defaultRPCClientAPIHost = "127.0.0.1:5050"
	defaultDevnetListenAddr = "127.0.0.1:5050"
	defaultLoggerLevel      = "INFO"
	defaultCliTimeOut       = "60s"
)

type storageParams struct {
	dataDir     string
	devnetDir   string
	registryDir string
}

type loggerParams struct {
	level string
}

type devnetConfig struct {
	loggerParams  loggerParams
	storageParams storageParams
	listenAddr    string
	minFee        *uint256.Int
}

type clientConfig struct {
	loggerParams        loggerParams
	storageParams       storageParams
	rpcClientApiHost    string
	rpcClientApiTimeOut time.Duration
	scripts             *scripts.Config
}

func readFromConfigPath(v *viper.Viper, customFile string) error {
	filename := filepath.Base(defaultConfigFile)
	ext := filepath.Ext(defaultConfigFile)
	configPath := filepath.Dir(defaultConfigFile)
	v.AddConfigPath("$HOME/.uwutoken")
	v.AddConfigPath("/etc/uwutoken")
	v.AddConfigPath(configPath)
	v.SetConfigType(strings.TrimPrefix(ext, "."))
	v.SetConfigName(strings.TrimSuffix(filename, ext))
	v.SetConfigFile(customFile)
	return v.ReadInConfig()
}

// loadConfig reads the config file if there is one. A missing default
// file is fine, a missing explicit one is not.
func loadConfig(customFile string) (*viper.Viper, error) {
	v := viper.New()
	if err := readFromConfigPath(v, customFile); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || customFile != "" {
			return nil, err
		}
	}
	return v, nil
}

func parseConfigLoggerParams(v *viper.Viper) loggerParams {
	params := loggerParams{}
	params.level = v.GetString("logger.level")
	if params.level == "" {
		params.level = defaultLoggerLevel
	}
	return params
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		return filepath.Join(os.Getenv("HOME"), strings.TrimPrefix(p, "~"))
	}
	return p
}

func setupDataDir(params *storageParams, datadir string) {
	if datadir != "" && params.dataDir != datadir {
		*params = storageParams{dataDir: datadir}
	}
	params.dataDir = expandHome(params.dataDir)
	if params.devnetDir == "" {
		params.devnetDir = filepath.Join(params.dataDir, defaultDevnetDir)
	}
	if params.registryDir == "" {
		params.registryDir = filepath.Join(params.dataDir, defaultRegistryDir)
	}
}

func parseConfigStorageParams(v *viper.Viper) storageParams {
	params := storageParams{}
	params.dataDir = v.GetString("storage.datadir")
	params.devnetDir = v.GetString("storage.devnetdir")
	params.registryDir = v.GetString("storage.registrydir")
	if params.dataDir == "" {
		params.dataDir = filepath.Join(os.Getenv("HOME"), defaultStorageDir)
	}
	setupDataDir(&params, params.dataDir)
	return params
}

func parseUintParam(v *viper.Viper, key string) (*uint256.Int, error) {
	s := v.GetString(key)
	if s == "" {
		return new(uint256.Int), nil
	}
	n, err := common.ParseUint(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func parseAmountParam(v *viper.Viper, key string, def decimal.Decimal) (decimal.Decimal, error) {
	s := v.GetString(key)
	if s == "" {
		return def, nil
	}
	d, err := common.ParseAmount(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseScriptsConfig(v *viper.Viper) (*scripts.Config, error) {
	cfg := scripts.DefaultConfig()
	strs := map[string]*string{
		"network":        &cfg.Network,
		"token.contract": &cfg.ContractName,
		"token.alias":    &cfg.TokenAlias,
		"token.name":     &cfg.Name,
		"token.symbol":   &cfg.Symbol,
		"accounts.a":     &cfg.AccountA,
		"accounts.b":     &cfg.AccountB,
	}
	for key, dst := range strs {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
	var err error
	if v.IsSet("token.decimals") {
		if cfg.Decimals, err = cast.ToInt32E(v.Get("token.decimals")); err != nil {
			return nil, fmt.Errorf("token.decimals: %w", err)
		}
	}
	if cfg.InitialSupply, err = parseAmountParam(v, "token.initial_supply", cfg.InitialSupply); err != nil {
		return nil, err
	}
	if cfg.TransferAmount, err = parseAmountParam(v, "transfer.amount", cfg.TransferAmount); err != nil {
		return nil, err
	}
	if cfg.MaxFee, err = parseUintParam(v, "transfer.maxfee"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDevnetConfig(v *viper.Viper) (devnetConfig, error) {
	minFee, err := parseUintParam(v, "devnet.minfee")
	if err != nil {
		return devnetConfig{}, err
	}
	listen := v.GetString("devnet.listen")
	if listen == "" {
		listen = defaultDevnetListenAddr
	}
	return devnetConfig{
		loggerParams:  parseConfigLoggerParams(v),
		storageParams: parseConfigStorageParams(v),
		listenAddr:    listen,
		minFee:        minFee,
	}, nil
}

func parseClientConfig(v *viper.Viper, host string) (clientConfig, error) {
	apiHost := v.GetString("rpcclient.apihost")
	if host != "" {
		apiHost = host
	}
	if apiHost == "" {
		apiHost = defaultRPCClientAPIHost
	}
	if !strings.HasPrefix(apiHost, "http://") && !strings.HasPrefix(apiHost, "https://") {
		apiHost = fmt.Sprintf("http://%s", apiHost)
	}
	timeout := v.GetString("rpcclient.timeout")
	if timeout == "" {
		timeout = defaultCliTimeOut
	}
	timeDur, err := time.ParseDuration(timeout)
	if err != nil {
		return clientConfig{}, err
	}
	if timeDur < time.Second || timeDur > 10*time.Minute {
		return clientConfig{}, fmt.Errorf("rpcclient.timeout %s out of range", timeDur)
	}
	cfg, err := parseScriptsConfig(v)
	if err != nil {
		return clientConfig{}, err
	}
	return clientConfig{
		loggerParams:        parseConfigLoggerParams(v),
		storageParams:       parseConfigStorageParams(v),
		rpcClientApiHost:    apiHost,
		rpcClientApiTimeOut: timeDur,
		scripts:             cfg,
	}, nil
}
