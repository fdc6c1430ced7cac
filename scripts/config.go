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

package scripts

import (
	"errors"
	"fmt"

	"uwutoken/common"
	"uwutoken/nre"
	"uwutoken/registry"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	DefaultNetwork    = "localhost"
	DefaultTokenAlias = "uwu_token"
	DefaultAccountA   = "ACCOUNT_A"
	DefaultAccountB   = "ACCOUNT_B"
)

// Config is shared by the deploy and transfer procedures.
type Config struct {
	Network        string
	ContractName   string
	TokenAlias     string
	AccountA       string
	AccountB       string
	Name           string
	Symbol         string
	Decimals       int32
	InitialSupply  decimal.Decimal
	TransferAmount decimal.Decimal
	MaxFee         *uint256.Int
}

func DefaultConfig() *Config {
	return &Config{
		Network:        DefaultNetwork,
		ContractName:   nre.DefaultContractName,
		TokenAlias:     DefaultTokenAlias,
		AccountA:       DefaultAccountA,
		AccountB:       DefaultAccountB,
		Name:           "UwuToken",
		Symbol:         "UWU",
		Decimals:       common.TokenDecimals,
		InitialSupply:  decimal.NewFromInt(1337),
		TransferAmount: decimal.New(5, -1),
		MaxFee:         new(uint256.Int),
	}
}

var errConfig = errors.New("invalid config")

func (cfg *Config) Validate() error {
	for k, v := range map[string]string{
		"contract":  cfg.ContractName,
		"alias":     cfg.TokenAlias,
		"account a": cfg.AccountA,
		"account b": cfg.AccountB,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s must not be empty", errConfig, k)
		}
	}
	for _, name := range []string{cfg.Network, cfg.TokenAlias, cfg.AccountA, cfg.AccountB} {
		if err := registry.CheckName(name); err != nil {
			return fmt.Errorf("%w: %v", errConfig, err)
		}
	}
	if cfg.AccountA == cfg.AccountB {
		return fmt.Errorf("%w: accounts a and b must differ", errConfig)
	}
	if _, err := common.StrToFelt(cfg.Name); err != nil {
		return fmt.Errorf("%w: name: %v", errConfig, err)
	}
	if _, err := common.StrToFelt(cfg.Symbol); err != nil {
		return fmt.Errorf("%w: symbol: %v", errConfig, err)
	}
	if cfg.Decimals < 0 || cfg.Decimals > 255 {
		return fmt.Errorf("%w: decimals %d out of range", errConfig, cfg.Decimals)
	}
	if _, err := common.ToDecimals(cfg.InitialSupply, cfg.Decimals); err != nil {
		return fmt.Errorf("%w: initial supply: %v", errConfig, err)
	}
	if _, err := common.ToDecimals(cfg.TransferAmount, cfg.Decimals); err != nil {
		return fmt.Errorf("%w: transfer amount: %v", errConfig, err)
	}
	if cfg.MaxFee == nil {
		cfg.MaxFee = new(uint256.Int)
	}
	return nil
}
