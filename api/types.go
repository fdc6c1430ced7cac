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

type EmptyArgs struct{}

type AccountDeployArgs struct {
	Salt string `json:"salt"`
}

type AccountResp struct {
	Address string `json:"address"`
	TxHash  string `json:"transaction_hash"`
}

type AccountExecuteArgs struct {
	Account            string   `json:"account"`
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
	MaxFee             string   `json:"max_fee"`
}

type AccountGetNonceArgs struct {
	Account string `json:"account"`
}

type TxResp struct {
	TxHash string `json:"transaction_hash"`
	Status string `json:"status"`
}

type ContractDeployArgs struct {
	Contract string   `json:"contract"`
	Calldata []string `json:"calldata"`
}

type ContractDeployResp struct {
	ContractAddress string `json:"contract_address"`
	TxHash          string `json:"transaction_hash"`
}

type ContractCallArgs struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

type ContractGetClassArgs struct {
	ContractAddress string `json:"contract_address"`
}

type TransactionGetArgs struct {
	TxHash string `json:"transaction_hash"`
}

type NodeInfoResp struct {
	Version string   `json:"version"`
	Classes []string `json:"classes"`
	MinFee  string   `json:"min_fee"`
}
