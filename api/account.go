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

package api

import (
	"strconv"

	"uwutoken"
	"uwutoken/devnet"

	"github.com/holiman/uint256"
)

type AccountAPIHandler struct {
	State *devnet.State
}

func (handler *AccountAPIHandler) Deploy(args AccountDeployArgs, resp *AccountResp) error {
	if args.Salt == "" {
		return uwutoken.NewRPCError(uwutoken.CodeInvalidParams, "salt must not be empty")
	}
	address, hash, err := handler.State.DeployAccount(args.Salt)
	if err != nil {
		return errorcase(err)
	}
	*resp = AccountResp{Address: address, TxHash: hash}
	return nil
}

func (handler *AccountAPIHandler) Execute(args AccountExecuteArgs, resp *TxResp) error {
	sender, err := parseFelt(args.Account, "account")
	if err != nil {
		return err
	}
	to, err := parseFelt(args.ContractAddress, "contract_address")
	if err != nil {
		return err
	}
	selector, err := parseFelt(args.EntryPointSelector, "entry_point_selector")
	if err != nil {
		return err
	}
	calldata, err := parseCalldata(args.Calldata)
	if err != nil {
		return err
	}
	maxFee := new(uint256.Int)
	if args.MaxFee != "" {
		if maxFee, err = parseFelt(args.MaxFee, "max_fee"); err != nil {
			return err
		}
	}
	rec, err := handler.State.Invoke(sender, to, selector, calldata, maxFee)
	if err != nil {
		return errorcase(err)
	}
	*resp = TxResp{TxHash: rec.Hash, Status: rec.Status}
	return nil
}

func (handler *AccountAPIHandler) GetNonce(args AccountGetNonceArgs, resp *string) error {
	account, err := parseFelt(args.Account, "account")
	if err != nil {
		return err
	}
	nonce, err := handler.State.GetNonce(account)
	if err != nil {
		return errorcase(err)
	}
	*resp = strconv.FormatUint(nonce, 10)
	return nil
}
