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

package nre

import (
	"context"
	"errors"
	"fmt"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/log"
	"uwutoken/registry"

	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// RPCRuntime implements Runtime over the node JSON-RPC API and keeps
// aliases in a local registry.
type RPCRuntime struct {
	cli    *uwutoken.Client
	reg    registry.Registry
	logger log.Logger
}

func New(cli *uwutoken.Client, reg registry.Registry, logger log.Logger) *RPCRuntime {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &RPCRuntime{
		cli:    cli,
		reg:    reg,
		logger: logger,
	}
}

type rpcAccount struct {
	rt      *RPCRuntime
	alias   string
	address string
}

func (a *rpcAccount) Alias() string {
	return a.alias
}

func (a *rpcAccount) Address() string {
	return a.address
}

func (a *rpcAccount) Send(ctx context.Context, contract string, function string, args []*uint256.Int, maxFee *uint256.Int) (*TxInfo, error) {
	to, err := a.rt.resolveContract(contract)
	if err != nil {
		return nil, err
	}
	if maxFee == nil {
		maxFee = new(uint256.Int)
	}
	req := &accountExecuteArgs{
		Account:            a.address,
		ContractAddress:    to,
		EntryPointSelector: common.SelectorHex(function),
		Calldata:           common.FeltsToHex(args),
		MaxFee:             common.FeltHex(maxFee),
	}
	info := &TxInfo{}
	if err = a.rt.cli.CallMethod(ctx, "Account.Execute", req, info); err != nil {
		return nil, fmt.Errorf("invoke %s on %s: %w", function, contract, err)
	}
	a.rt.logger.WithFields(logrus.Fields{
		"account":  a.alias,
		"function": function,
		"tx":       info.Hash,
		"status":   info.Status,
	}).Debugf("sent transaction")
	return info, nil
}

func (rt *RPCRuntime) GetOrDeployAccount(ctx context.Context, alias string) (Account, error) {
	entry, err := registry.ResolveKind(rt.reg, alias, registry.KindAccount)
	if err == nil {
		return &rpcAccount{rt: rt, alias: alias, address: entry.Address}, nil
	}
	if !errors.Is(err, registry.ErrNotFound) {
		return nil, err
	}
	resp := &accountResp{}
	if err = rt.cli.CallMethod(ctx, "Account.Deploy", &accountDeployArgs{Salt: alias}, resp); err != nil {
		return nil, fmt.Errorf("deploy account %s: %w", alias, err)
	}
	if err = rt.reg.Register(alias, &registry.Entry{
		Kind:    registry.KindAccount,
		Address: resp.Address,
		TxHash:  resp.TxHash,
	}); err != nil {
		return nil, err
	}
	rt.logger.WithFields(logrus.Fields{
		"alias":   alias,
		"address": resp.Address,
	}).Infof("deployed account")
	address, err := common.NormalizeAddress(resp.Address)
	if err != nil {
		return nil, err
	}
	return &rpcAccount{rt: rt, alias: alias, address: address}, nil
}

func (rt *RPCRuntime) Deploy(ctx context.Context, contract string, args []*uint256.Int, alias string) (string, *TxInfo, error) {
	req := &contractDeployArgs{
		Contract: contract,
		Calldata: common.FeltsToHex(args),
	}
	resp := &contractDeployResp{}
	if err := rt.cli.CallMethod(ctx, "Contract.Deploy", req, resp); err != nil {
		return "", nil, fmt.Errorf("deploy %s: %w", contract, err)
	}
	address, err := common.NormalizeAddress(resp.ContractAddress)
	if err != nil {
		return "", nil, err
	}
	if err = rt.reg.Register(alias, &registry.Entry{
		Kind:     registry.KindContract,
		Address:  address,
		Contract: contract,
		TxHash:   resp.TxHash,
	}); err != nil {
		return "", nil, err
	}
	rt.logger.WithFields(logrus.Fields{
		"contract": contract,
		"alias":    alias,
		"address":  address,
	}).Infof("deployed contract")
	return address, &TxInfo{Hash: resp.TxHash, Status: StatusAcceptedOnL2}, nil
}

func (rt *RPCRuntime) GetDeployment(ctx context.Context, alias string) (string, *TxInfo, error) {
	entry, err := registry.ResolveKind(rt.reg, alias, registry.KindContract)
	if err != nil {
		return "", nil, err
	}
	return entry.Address, &TxInfo{Hash: entry.TxHash}, nil
}

func (rt *RPCRuntime) Call(ctx context.Context, contract string, function string, args []*uint256.Int) ([]string, error) {
	to, err := rt.resolveContract(contract)
	if err != nil {
		return nil, err
	}
	req := &contractCallArgs{
		ContractAddress:    to,
		EntryPointSelector: common.SelectorHex(function),
		Calldata:           common.FeltsToHex(args),
	}
	result := make([]string, 0)
	if err = rt.cli.CallMethod(ctx, "Contract.Call", req, &result); err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", function, contract, err)
	}
	return result, nil
}

// resolveContract turns an alias into an address; addresses pass through.
func (rt *RPCRuntime) resolveContract(contract string) (string, error) {
	if common.IsAddress(contract) {
		return common.NormalizeAddress(contract)
	}
	entry, err := rt.reg.Resolve(contract)
	if err != nil {
		return "", err
	}
	return entry.Address, nil
}
