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

type accountDeployArgs struct {
	Salt string `json:"salt"`
}

type accountResp struct {
	Address string `json:"address"`
	TxHash  string `json:"transaction_hash"`
}

type accountExecuteArgs struct {
	Account            string   `json:"account"`
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
	MaxFee             string   `json:"max_fee"`
}

type contractDeployArgs struct {
	Contract string   `json:"contract"`
	Calldata []string `json:"calldata"`
}

type contractDeployResp struct {
	ContractAddress string `json:"contract_address"`
	TxHash          string `json:"transaction_hash"`
}

type contractCallArgs struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}
