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

// Package nretest provides an in-memory Runtime that simulates the token
// contract and records every interaction.
package nretest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"uwutoken/common"
	"uwutoken/nre"

	"github.com/holiman/uint256"
)

var (
	ErrUnknownAlias  = errors.New("unknown alias")
	ErrFeeTooLow     = errors.New("max fee too low")
	ErrInsufficient  = errors.New("insufficient balance")
	ErrUnknownMethod = errors.New("unknown function")
)

type DeployCall struct {
	Contract string
	Args     []*uint256.Int
	Alias    string
}

type SendCall struct {
	From     string
	Contract string
	Function string
	Args     []*uint256.Int
	MaxFee   *uint256.Int
}

type CallRecord struct {
	Contract string
	Function string
	Args     []*uint256.Int
}

type token struct {
	address  string
	name     *uint256.Int
	symbol   *uint256.Int
	decimals *uint256.Int
	supply   *uint256.Int
	balances map[string]*uint256.Int
}

// Runtime is safe for concurrent use. Set Fail to make the named operation
// ("deploy", "call:<function>", "send:<function>", "account") return an error.
type Runtime struct {
	mu       sync.Mutex
	MinFee   *uint256.Int
	Fail     map[string]error
	Deploys  []DeployCall
	Sends    []SendCall
	Calls    []CallRecord
	accounts map[string]*Account
	tokens   map[string]*token
	next     uint64
}

func New() *Runtime {
	return &Runtime{
		MinFee:   new(uint256.Int),
		Fail:     make(map[string]error),
		accounts: make(map[string]*Account),
		tokens:   make(map[string]*token),
	}
}

type Account struct {
	rt      *Runtime
	alias   string
	address string
}

func (a *Account) Alias() string   { return a.alias }
func (a *Account) Address() string { return a.address }

func (rt *Runtime) newAddress() string {
	rt.next++
	return common.AddressHex(new(uint256.Int).Lsh(uint256.NewInt(rt.next), 128))
}

func (rt *Runtime) txHash() string {
	rt.next++
	return common.FeltHex(uint256.NewInt(rt.next))
}

func (rt *Runtime) GetOrDeployAccount(ctx context.Context, alias string) (nre.Account, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if err := rt.Fail["account"]; err != nil {
		return nil, err
	}
	if a, ok := rt.accounts[alias]; ok {
		return a, nil
	}
	a := &Account{rt: rt, alias: alias, address: rt.newAddress()}
	rt.accounts[alias] = a
	return a, nil
}

func (rt *Runtime) Deploy(ctx context.Context, contract string, args []*uint256.Int, alias string) (string, *nre.TxInfo, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Deploys = append(rt.Deploys, DeployCall{Contract: contract, Args: args, Alias: alias})
	if err := rt.Fail["deploy"]; err != nil {
		return "", nil, err
	}
	if len(args) != 6 {
		return "", nil, fmt.Errorf("constructor expects 6 arguments, got %d", len(args))
	}
	supply, err := common.FromUint(args[3], args[4])
	if err != nil {
		return "", nil, err
	}
	t := &token{
		address:  rt.newAddress(),
		name:     args[0],
		symbol:   args[1],
		decimals: args[2],
		supply:   supply,
		balances: map[string]*uint256.Int{
			common.AddressHex(args[5]): supply.Clone(),
		},
	}
	rt.tokens[alias] = t
	return t.address, &nre.TxInfo{Hash: rt.txHash(), Status: nre.StatusAcceptedOnL2}, nil
}

func (rt *Runtime) GetDeployment(ctx context.Context, alias string) (string, *nre.TxInfo, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	t, ok := rt.tokens[alias]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownAlias, alias)
	}
	return t.address, &nre.TxInfo{Status: nre.StatusAcceptedOnL2}, nil
}

func (rt *Runtime) lookup(contract string) (*token, error) {
	if t, ok := rt.tokens[contract]; ok {
		return t, nil
	}
	for _, t := range rt.tokens {
		if t.address == contract {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlias, contract)
}

func (t *token) balance(account string) *uint256.Int {
	if b, ok := t.balances[account]; ok {
		return b
	}
	return new(uint256.Int)
}

func split(v *uint256.Int) []string {
	low, high := common.ToUint(v)
	return []string{common.FeltHex(low), common.FeltHex(high)}
}

func (rt *Runtime) Call(ctx context.Context, contract string, function string, args []*uint256.Int) ([]string, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Calls = append(rt.Calls, CallRecord{Contract: contract, Function: function, Args: args})
	if err := rt.Fail["call:"+function]; err != nil {
		return nil, err
	}
	t, err := rt.lookup(contract)
	if err != nil {
		return nil, err
	}
	switch function {
	case "name":
		return []string{common.FeltHex(t.name)}, nil
	case "symbol":
		return []string{common.FeltHex(t.symbol)}, nil
	case "decimals":
		return []string{common.FeltHex(t.decimals)}, nil
	case "totalSupply":
		return split(t.supply), nil
	case "balanceOf":
		if len(args) != 1 {
			return nil, fmt.Errorf("balanceOf expects 1 argument, got %d", len(args))
		}
		return split(t.balance(common.AddressHex(args[0]))), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, function)
}

// Balance returns the raw balance of account on the token behind alias.
func (rt *Runtime) Balance(alias, account string) *uint256.Int {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	t, ok := rt.tokens[alias]
	if !ok {
		return new(uint256.Int)
	}
	return t.balance(account).Clone()
}

func (a *Account) Send(ctx context.Context, contract string, function string, args []*uint256.Int, maxFee *uint256.Int) (*nre.TxInfo, error) {
	rt := a.rt
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.Sends = append(rt.Sends, SendCall{From: a.address, Contract: contract, Function: function, Args: args, MaxFee: maxFee})
	if err := rt.Fail["send:"+function]; err != nil {
		return nil, err
	}
	if maxFee == nil || maxFee.Lt(rt.MinFee) {
		return nil, ErrFeeTooLow
	}
	t, err := rt.lookup(contract)
	if err != nil {
		return nil, err
	}
	if function != "transfer" || len(args) != 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, function)
	}
	amount, err := common.FromUint(args[1], args[2])
	if err != nil {
		return nil, err
	}
	from := t.balance(a.address)
	if from.Lt(amount) {
		return nil, ErrInsufficient
	}
	to := common.AddressHex(args[0])
	t.balances[a.address] = new(uint256.Int).Sub(from, amount)
	t.balances[to] = new(uint256.Int).Add(t.balance(to), amount)
	return &nre.TxInfo{Hash: rt.txHash(), Status: nre.StatusAcceptedOnL2}, nil
}
