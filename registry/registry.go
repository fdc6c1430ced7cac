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

// Package registry maps aliases such as "uwu_token" or "ACCOUNT_A" to the
// addresses they were deployed at, per network.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"uwutoken/common"
)

type Kind string

const (
	KindAccount  Kind = "account"
	KindContract Kind = "contract"
)

var (
	ErrNotFound     = errors.New("alias not found")
	ErrKindMismatch = errors.New("alias bound to a different kind")
	ErrEmptyAlias   = errors.New("alias must not be empty")
	ErrInvalidName  = errors.New("name must not contain ':'")
)

// nameSep separates the network from the alias in storage keys.
const nameSep = ":"

// CheckName rejects aliases and network names that could not be told
// apart from each other in a storage key.
func CheckName(name string) error {
	if strings.Contains(name, nameSep) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

type Entry struct {
	Alias     string `json:"alias"`
	Kind      Kind   `json:"kind"`
	Address   string `json:"address"`
	Contract  string `json:"contract,omitempty"`
	TxHash    string `json:"tx_hash,omitempty"`
	Network   string `json:"network"`
	CreatedAt int64  `json:"created_at"`
}

type Registry interface {
	Resolve(alias string) (*Entry, error)
	Register(alias string, entry *Entry) error
	List() ([]*Entry, error)
	Remove(alias string) error
}

// ResolveKind resolves alias and checks that it names the expected kind.
func ResolveKind(reg Registry, alias string, kind Kind) (*Entry, error) {
	entry, err := reg.Resolve(alias)
	if err != nil {
		return nil, err
	}
	if entry.Kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s, want %s", ErrKindMismatch, alias, entry.Kind, kind)
	}
	return entry, nil
}

// prepare validates and normalizes an entry before it is stored.
func prepare(alias string, network string, entry *Entry) (*Entry, error) {
	if alias == "" {
		return nil, ErrEmptyAlias
	}
	if err := CheckName(alias); err != nil {
		return nil, err
	}
	if err := CheckName(network); err != nil {
		return nil, err
	}
	addr, err := common.NormalizeAddress(entry.Address)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", alias, err)
	}
	e := *entry
	e.Alias = alias
	e.Address = addr
	e.Network = network
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	return &e, nil
}

func notFound(alias string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, alias)
}
