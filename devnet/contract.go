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
	"errors"
	"fmt"

	"uwutoken/common"
	"uwutoken/storage/badger"

	"github.com/holiman/uint256"
)

var (
	ErrUnknownAccount    = errors.New("unknown account")
	ErrUnknownContract   = errors.New("unknown contract")
	ErrUnknownClass      = errors.New("unknown contract class")
	ErrUnknownTx         = errors.New("unknown transaction")
	ErrUnknownEntryPoint = errors.New("unknown entry point")
	ErrFeeTooLow         = errors.New("max fee too low")
	ErrExecution         = errors.New("contract execution failed")
	ErrCalldata          = errors.New("invalid calldata")
)

// execError wraps a contract failure so callers can match ErrExecution.
func execError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrExecution, fmt.Sprintf(format, args...))
}

// execContext is what a running entry point sees.
type execContext struct {
	caller *uint256.Int
	self   *uint256.Int
	store  *contractStore
}

type entryPoint struct {
	name string
	fn   func(ctx *execContext, calldata []*uint256.Int) ([]*uint256.Int, error)
}

// contractClass is a builtin contract implementation.
type contractClass interface {
	Name() string
	Constructor(ctx *execContext, calldata []*uint256.Int) error
	EntryPoints() []entryPoint
}

var builtinClasses = map[string]contractClass{}

func registerClass(c contractClass) {
	builtinClasses[c.Name()] = c
}

// Classes lists the contract classes the devnet can deploy.
func Classes() []string {
	names := make([]string, 0, len(builtinClasses))
	for name := range builtinClasses {
		names = append(names, name)
	}
	return names
}

func findEntryPoint(c contractClass, selector *uint256.Int) (entryPoint, bool) {
	for _, ep := range c.EntryPoints() {
		if common.Selector(ep.name).Eq(selector) {
			return ep, true
		}
	}
	return entryPoint{}, false
}

// contractStore buffers writes to one contract's storage until commit.
type contractStore struct {
	db      badger.IStorage
	address *uint256.Int
	pending map[string][]byte
	order   []string
}

func newContractStore(db badger.IStorage, address *uint256.Int) *contractStore {
	return &contractStore{
		db:      db,
		address: address,
		pending: make(map[string][]byte),
	}
}

func (s *contractStore) key(name string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", storagePre, common.AddressHex(s.address), name))
}

func (s *contractStore) Get(name string) (*uint256.Int, error) {
	if val, ok := s.pending[name]; ok {
		return new(uint256.Int).SetBytes(val), nil
	}
	val, err := s.db.GetData(s.key(name))
	if errors.Is(err, badger.ErrNotFound) {
		return new(uint256.Int), nil
	}
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(val), nil
}

func (s *contractStore) Set(name string, val *uint256.Int) {
	if _, ok := s.pending[name]; !ok {
		s.order = append(s.order, name)
	}
	b := val.Bytes32()
	s.pending[name] = b[:]
}

func (s *contractStore) writeTo(batch *badger.StorageWriteBatch) {
	for _, name := range s.order {
		batch.Put(s.key(name), s.pending[name])
	}
}
