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
	"sort"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/devnet"
)

type TransactionAPIHandler struct {
	State *devnet.State
}

func (handler *TransactionAPIHandler) Get(args TransactionGetArgs, resp **devnet.TxRecord) error {
	if args.TxHash == "" {
		return uwutoken.NewRPCError(uwutoken.CodeInvalidParams, "transaction_hash must not be empty")
	}
	rec, err := handler.State.GetTransaction(args.TxHash)
	if err != nil {
		return errorcase(err)
	}
	*resp = rec
	return nil
}

type NodeAPIHandler struct {
	State *devnet.State
}

func (handler *NodeAPIHandler) Info(args EmptyArgs, resp *NodeInfoResp) error {
	classes := devnet.Classes()
	sort.Strings(classes)
	*resp = NodeInfoResp{
		Version: uwutoken.VersionString(),
		Classes: classes,
		MinFee:  common.FeltHex(handler.State.MinFee()),
	}
	return nil
}
