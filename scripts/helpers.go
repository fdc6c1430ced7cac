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

	"uwutoken/common"
	"uwutoken/nre"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// callUint reads a view returning a (low, high) pair.
func callUint(ctx context.Context, rt nre.Runtime, contract, function string, args ...*uint256.Int) (*uint256.Int, error) {
	result, err := rt.Call(ctx, contract, function, args)
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("%s: expected (low, high), got %d felts", function, len(result))
	}
	low, err := common.FromHex(result[0])
	if err != nil {
		return nil, err
	}
	high, err := common.FromHex(result[1])
	if err != nil {
		return nil, err
	}
	return common.FromUint(low, high)
}

func callFelt(ctx context.Context, rt nre.Runtime, contract, function string) (*uint256.Int, error) {
	result, err := rt.Call(ctx, contract, function, nil)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%s: empty result", function)
	}
	return common.FromHex(result[0])
}

// Balance returns the display balance of address on the configured token.
func Balance(ctx context.Context, rt nre.Runtime, cfg *Config, address string) (decimal.Decimal, error) {
	account, err := common.FromHex(address)
	if err != nil {
		return decimal.Zero, err
	}
	raw, err := callUint(ctx, rt, cfg.TokenAlias, "balanceOf", account)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance of %s: %w", address, err)
	}
	return common.FromDecimals(raw, cfg.Decimals), nil
}
