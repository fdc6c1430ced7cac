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
	"errors"

	"uwutoken"
	"uwutoken/common"
	"uwutoken/devnet"

	"github.com/holiman/uint256"
)

// errorcase maps devnet failures onto JSON-RPC error codes.
func errorcase(err error) error {
	if err == nil {
		return nil
	}
	code := uwutoken.CodeInternalError
	switch {
	case errors.Is(err, devnet.ErrUnknownAccount), errors.Is(err, devnet.ErrUnknownContract),
		errors.Is(err, devnet.ErrUnknownTx):
		code = uwutoken.CodeUnknownContract
	case errors.Is(err, devnet.ErrUnknownEntryPoint):
		code = uwutoken.CodeUnknownEntry
	case errors.Is(err, devnet.ErrFeeTooLow):
		code = uwutoken.CodeFeeTooLow
	case errors.Is(err, devnet.ErrExecution), errors.Is(err, devnet.ErrUnknownClass):
		code = uwutoken.CodeExecutionFailed
	case errors.Is(err, common.ErrInvalidHex), errors.Is(err, common.ErrHexOverflow),
		errors.Is(err, common.ErrNotFelt), errors.Is(err, devnet.ErrCalldata):
		code = uwutoken.CodeInvalidParams
	}
	return uwutoken.NewRPCErrorCause(code, err)
}

func parseFelt(s string, what string) (*uint256.Int, error) {
	if s == "" {
		return nil, uwutoken.NewRPCError(uwutoken.CodeInvalidParams, what+" must not be empty")
	}
	f, err := common.FromHex(s)
	if err != nil {
		return nil, errorcase(err)
	}
	if !common.IsFelt(f) {
		return nil, errorcase(common.ErrNotFelt)
	}
	return f, nil
}

func parseCalldata(data []string) ([]*uint256.Int, error) {
	felts, err := common.FeltsFromHex(data)
	if err != nil {
		return nil, errorcase(err)
	}
	return felts, nil
}
