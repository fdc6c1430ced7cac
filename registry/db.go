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

package registry

import (
	"encoding/json"
	"errors"
	"strings"

	"uwutoken/storage/badger"
)

var aliasKeyPre = []byte("alias:")

// DBRegistry persists aliases in a key-value store, keyed
// alias:<network>:<alias>.
type DBRegistry struct {
	storage badger.IStorage
	network string
}

func New(storage badger.IStorage, network string) *DBRegistry {
	return &DBRegistry{
		storage: storage,
		network: network,
	}
}

func (r *DBRegistry) prefix() []byte {
	pre := append([]byte{}, aliasKeyPre...)
	pre = append(pre, r.network...)
	return append(pre, nameSep...)
}

func (r *DBRegistry) key(alias string) []byte {
	return append(r.prefix(), alias...)
}

func (r *DBRegistry) Resolve(alias string) (*Entry, error) {
	if CheckName(alias) != nil || CheckName(r.network) != nil {
		return nil, notFound(alias)
	}
	data, err := r.storage.GetData(r.key(alias))
	if errors.Is(err, badger.ErrNotFound) {
		return nil, notFound(alias)
	}
	if err != nil {
		return nil, err
	}
	entry := &Entry{}
	if err = json.Unmarshal(data, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *DBRegistry) Register(alias string, entry *Entry) error {
	e, err := prepare(alias, r.network, entry)
	if err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.storage.SetData(r.key(alias), data)
}

func (r *DBRegistry) List() ([]*Entry, error) {
	entries := make([]*Entry, 0)
	err := r.storage.PrefixForeachData(r.prefix(), func(k []byte, v []byte) error {
		// keys of a network whose name extends ours
		if strings.Contains(string(k), nameSep) {
			return nil
		}
		entry := &Entry{}
		if err := json.Unmarshal(v, entry); err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *DBRegistry) Remove(alias string) error {
	if _, err := r.Resolve(alias); err != nil {
		return err
	}
	return r.storage.DelData(r.key(alias))
}
