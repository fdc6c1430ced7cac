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

// Package nre is the network runtime environment the token procedures run
// against: account resolution, deployment, calls and invokes.
package nre

import (
	"context"

	"github.com/holiman/uint256"
)

const (
	StatusAcceptedOnL2  = "ACCEPTED_ON_L2"
	StatusRejected      = "REJECTED"
	DefaultContractName = "UwuToken"
)

type TxInfo struct {
	Hash   string `json:"transaction_hash"`
	Status string `json:"status"`
}

// Account is a deployed account contract able to send invokes.
type Account interface {
	Alias() string
	Address() string
	Send(ctx context.Context, contract string, function string, args []*uint256.Int, maxFee *uint256.Int) (*TxInfo, error)
}

// Runtime is the contract-interaction service. Contracts may be named by
// alias or by 0x address wherever an address is expected.
type Runtime interface {
	GetOrDeployAccount(ctx context.Context, alias string) (Account, error)
	Deploy(ctx context.Context, contract string, args []*uint256.Int, alias string) (string, *TxInfo, error)
	GetDeployment(ctx context.Context, alias string) (string, *TxInfo, error)
	Call(ctx context.Context, contract string, function string, args []*uint256.Int) ([]string, error)
}
