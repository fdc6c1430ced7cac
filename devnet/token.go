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

package devnet

import (
	"uwutoken/common"

	"github.com/holiman/uint256"
)

const TokenClassName = "UwuToken"

const (
	tokenNameKey        = "name"
	tokenSymbolKey      = "symbol"
	tokenDecimalsKey    = "decimals"
	tokenTotalSupplyKey = "total_supply"
	tokenBalancePre     = "balance:"
)

// token is a minimal ERC20 in the Cairo layout: amounts are Uint256
// (low, high) pairs and name/symbol are short string felts.
type token struct{}

func init() {
	registerClass(&token{})
}

func (t *token) Name() string {
	return TokenClassName
}

func balanceKey(account *uint256.Int) string {
	return tokenBalancePre + common.AddressHex(account)
}

func readUint(calldata []*uint256.Int, i int) (*uint256.Int, error) {
	v, err := common.FromUint(calldata[i], calldata[i+1])
	if err != nil {
		return nil, execError("amount at %d: %s", i, err)
	}
	return v, nil
}

func uintResult(v *uint256.Int) []*uint256.Int {
	low, high := common.ToUint(v)
	return []*uint256.Int{low, high}
}

// Constructor takes name, symbol, decimals, initial_supply (low, high)
// and recipient, and mints the whole supply to recipient.
func (t *token) Constructor(ctx *execContext, calldata []*uint256.Int) error {
	if len(calldata) != 6 {
		return execError("constructor expects 6 arguments, got %d", len(calldata))
	}
	if !calldata[2].IsUint64() || calldata[2].Uint64() > 255 {
		return execError("decimals must fit in 8 bits")
	}
	supply, err := readUint(calldata, 3)
	if err != nil {
		return err
	}
	ctx.store.Set(tokenNameKey, calldata[0])
	ctx.store.Set(tokenSymbolKey, calldata[1])
	ctx.store.Set(tokenDecimalsKey, calldata[2])
	ctx.store.Set(tokenTotalSupplyKey, supply)
	ctx.store.Set(balanceKey(calldata[5]), supply)
	return nil
}

func (t *token) EntryPoints() []entryPoint {
	return []entryPoint{
		{name: "name", fn: t.getter(tokenNameKey)},
		{name: "symbol", fn: t.getter(tokenSymbolKey)},
		{name: "decimals", fn: t.getter(tokenDecimalsKey)},
		{name: "totalSupply", fn: t.totalSupply},
		{name: "balanceOf", fn: t.balanceOf},
		{name: "transfer", fn: t.transfer},
	}
}

func (t *token) getter(key string) func(*execContext, []*uint256.Int) ([]*uint256.Int, error) {
	return func(ctx *execContext, calldata []*uint256.Int) ([]*uint256.Int, error) {
		v, err := ctx.store.Get(key)
		if err != nil {
			return nil, err
		}
		return []*uint256.Int{v}, nil
	}
}

func (t *token) totalSupply(ctx *execContext, calldata []*uint256.Int) ([]*uint256.Int, error) {
	v, err := ctx.store.Get(tokenTotalSupplyKey)
	if err != nil {
		return nil, err
	}
	return uintResult(v), nil
}

func (t *token) balanceOf(ctx *execContext, calldata []*uint256.Int) ([]*uint256.Int, error) {
	if len(calldata) != 1 {
		return nil, execError("balanceOf expects 1 argument, got %d", len(calldata))
	}
	v, err := ctx.store.Get(balanceKey(calldata[0]))
	if err != nil {
		return nil, err
	}
	return uintResult(v), nil
}

func (t *token) transfer(ctx *execContext, calldata []*uint256.Int) ([]*uint256.Int, error) {
	if len(calldata) != 3 {
		return nil, execError("transfer expects 3 arguments, got %d", len(calldata))
	}
	if ctx.caller == nil || ctx.caller.IsZero() {
		return nil, execError("transfer needs a caller account")
	}
	recipient := calldata[0]
	if recipient.IsZero() {
		return nil, execError("transfer to the zero address")
	}
	amount, err := readUint(calldata, 1)
	if err != nil {
		return nil, err
	}
	senderKey := balanceKey(ctx.caller)
	senderBalance, err := ctx.store.Get(senderKey)
	if err != nil {
		return nil, err
	}
	if senderBalance.Lt(amount) {
		return nil, execError("transfer amount exceeds balance")
	}
	ctx.store.Set(senderKey, new(uint256.Int).Sub(senderBalance, amount))
	recipientKey := balanceKey(recipient)
	recipientBalance, err := ctx.store.Get(recipientKey)
	if err != nil {
		return nil, err
	}
	ctx.store.Set(recipientKey, new(uint256.Int).Add(recipientBalance, amount))
	return []*uint256.Int{uint256.NewInt(1)}, nil
}
