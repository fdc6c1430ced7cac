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
	"uwutoken"
	"uwutoken/common"
	"uwutoken/devnet"
)

type ContractAPIHandler struct {
	State *devnet.State
}

func (handler *ContractAPIHandler) Deploy(args ContractDeployArgs, resp *ContractDeployResp) error {
	if args.Contract == "" {
		return uwutoken.NewRPCError(uwutoken.CodeInvalidParams, "contract must not be empty")
	}
	calldata, err := parseCalldata(args.Calldata)
	if err != nil {
		return err
	}
	address, hash, err := handler.State.DeployContract(args.Contract, calldata)
	if err != nil {
		return errorcase(err)
	}
	*resp = ContractDeployResp{ContractAddress: address, TxHash: hash}
	return nil
}

func (handler *ContractAPIHandler) Call(args ContractCallArgs, resp *[]string) error {
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
	result, err := handler.State.Call(to, selector, calldata)
	if err != nil {
		return errorcase(err)
	}
	*resp = common.FeltsToHex(result)
	return nil
}

func (handler *ContractAPIHandler) GetClass(args ContractGetClassArgs, resp *string) error {
	address, err := parseFelt(args.ContractAddress, "contract_address")
	if err != nil {
		return err
	}
	class, err := handler.State.GetClass(address)
	if err != nil {
		return errorcase(err)
	}
	*resp = class
	return nil
}
