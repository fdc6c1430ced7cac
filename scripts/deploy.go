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
	"context"
	"fmt"
	"io"

	"uwutoken/common"
	"uwutoken/nre"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type DeployResult struct {
	Address     string
	Tx          *nre.TxInfo
	Owner       string
	TotalSupply decimal.Decimal
	Name        string
	Symbol      string
}

// ConstructorArgs encodes the token constructor calldata:
// name, symbol, decimals, supply low, supply high, recipient.
func ConstructorArgs(cfg *Config, recipient string) ([]*uint256.Int, error) {
	name, err := common.StrToFelt(cfg.Name)
	if err != nil {
		return nil, err
	}
	symbol, err := common.StrToFelt(cfg.Symbol)
	if err != nil {
		return nil, err
	}
	supply, err := common.ToDecimals(cfg.InitialSupply, cfg.Decimals)
	if err != nil {
		return nil, err
	}
	low, high := common.ToUint(supply)
	owner, err := common.FromHex(recipient)
	if err != nil {
		return nil, err
	}
	return []*uint256.Int{
		name,
		symbol,
		uint256.NewInt(uint64(cfg.Decimals)),
		low,
		high,
		owner,
	}, nil
}

// Deploy deploys the token with the whole supply minted to account a and
// reads back its metadata. A failure after the deploy leaves the contract
// deployed.
func Deploy(ctx context.Context, rt nre.Runtime, cfg *Config, w io.Writer) (*DeployResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	account, err := rt.GetOrDeployAccount(ctx, cfg.AccountA)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", cfg.AccountA, err)
	}
	args, err := ConstructorArgs(cfg, account.Address())
	if err != nil {
		return nil, err
	}
	address, tx, err := rt.Deploy(ctx, cfg.ContractName, args, cfg.TokenAlias)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"alias":   cfg.TokenAlias,
		"address": address,
	}).Debugln("token deployed")
	fmt.Fprintf(w, "%s deployed at %s\n", cfg.ContractName, address)

	res := &DeployResult{
		Address: address,
		Tx:      tx,
		Owner:   account.Address(),
	}
	supply, err := callUint(ctx, rt, cfg.TokenAlias, "totalSupply")
	if err != nil {
		return res, fmt.Errorf("read total supply: %w", err)
	}
	res.TotalSupply = common.FromDecimals(supply, cfg.Decimals)
	fmt.Fprintf(w, "total supply: %s\n", res.TotalSupply)

	name, err := callFelt(ctx, rt, cfg.TokenAlias, "name")
	if err != nil {
		return res, fmt.Errorf("read name: %w", err)
	}
	res.Name = common.FeltToStr(name)
	fmt.Fprintf(w, "token name: %s\n", res.Name)

	symbol, err := callFelt(ctx, rt, cfg.TokenAlias, "symbol")
	if err != nil {
		return res, fmt.Errorf("read symbol: %w", err)
	}
	res.Symbol = common.FeltToStr(symbol)
	fmt.Fprintf(w, "token symbol: %s\n", res.Symbol)
	return res, nil
}
