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

type TransferResult struct {
	Token     string
	From      string
	To        string
	Amount    decimal.Decimal
	Tx        *nre.TxInfo
	BalancesA [2]decimal.Decimal
	BalancesB [2]decimal.Decimal
}

func printBalances(ctx context.Context, rt nre.Runtime, cfg *Config, w io.Writer, a, b nre.Account) (decimal.Decimal, decimal.Decimal, error) {
	balA, err := Balance(ctx, rt, cfg, a.Address())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	fmt.Fprintf(w, "balance a %s\n", balA)
	balB, err := Balance(ctx, rt, cfg, b.Address())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	fmt.Fprintf(w, "balance b %s\n", balB)
	return balA, balB, nil
}

// Transfer sends cfg.TransferAmount from account a to account b on the
// previously deployed token and prints the balances around it.
func Transfer(ctx context.Context, rt nre.Runtime, cfg *Config, w io.Writer) (*TransferResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := rt.GetOrDeployAccount(ctx, cfg.AccountA)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", cfg.AccountA, err)
	}
	b, err := rt.GetOrDeployAccount(ctx, cfg.AccountB)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", cfg.AccountB, err)
	}
	token, _, err := rt.GetDeployment(ctx, cfg.TokenAlias)
	if err != nil {
		return nil, fmt.Errorf("deployment %s: %w", cfg.TokenAlias, err)
	}
	res := &TransferResult{
		Token: token,
		From:  a.Address(),
		To:    b.Address(),
	}
	if res.BalancesA[0], res.BalancesB[0], err = printBalances(ctx, rt, cfg, w, a, b); err != nil {
		return res, err
	}

	recipient, err := common.FromHex(b.Address())
	if err != nil {
		return res, err
	}
	raw, err := common.ToDecimals(cfg.TransferAmount, cfg.Decimals)
	if err != nil {
		return res, err
	}
	low, high := common.ToUint(raw)
	amount, err := common.FromUint(low, high)
	if err != nil {
		return res, err
	}
	res.Amount = common.FromDecimals(amount, cfg.Decimals)
	fmt.Fprintf(w, "transfer %s to %s\n", res.Amount, b.Address())

	res.Tx, err = a.Send(ctx, token, "transfer", []*uint256.Int{recipient, low, high}, cfg.MaxFee)
	if err != nil {
		return res, err
	}
	logrus.WithFields(logrus.Fields{
		"tx":     res.Tx.Hash,
		"status": res.Tx.Status,
	}).Debugln("transfer sent")

	if res.BalancesA[1], res.BalancesB[1], err = printBalances(ctx, rt, cfg, w, a, b); err != nil {
		return res, err
	}
	return res, nil
}
