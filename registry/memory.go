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
	"sort"
	"sync"
)

// MemRegistry keeps aliases for the lifetime of the process.
type MemRegistry struct {
	mu      sync.RWMutex
	network string
	entries map[string]*Entry
}

func NewMemory(network string) *MemRegistry {
	return &MemRegistry{
		network: network,
		entries: make(map[string]*Entry),
	}
}

func (r *MemRegistry) Resolve(alias string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, has := r.entries[alias]
	if !has {
		return nil, notFound(alias)
	}
	e := *entry
	return &e, nil
}

func (r *MemRegistry) Register(alias string, entry *Entry) error {
	e, err := prepare(alias, r.network, entry)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.entries[alias] = e
	r.mu.Unlock()
	return nil
}

func (r *MemRegistry) List() ([]*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]*Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		e := *entry
		entries = append(entries, &e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Alias < entries[j].Alias
	})
	return entries, nil
}

func (r *MemRegistry) Remove(alias string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, has := r.entries[alias]; !has {
		return notFound(alias)
	}
	delete(r.entries, alias)
	return nil
}
