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

package lru

import (
	"container/list"
	"sync"
)

const KeySize = 32

// Cache is a fixed-size least-recently-used map from 32-byte keys,
// e.g. felt addresses, to raw values.
type Cache struct {
	mu     sync.Mutex
	size   int
	items  map[[KeySize]byte]*list.Element
	access *list.List
}

type cacheData struct {
	key [KeySize]byte
	val []byte
}

func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}
	return &Cache{
		size:   size,
		items:  make(map[[KeySize]byte]*list.Element, size),
		access: list.New(),
	}
}

func (c *Cache) Get(key [KeySize]byte) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.access.MoveToFront(elem)
	return elem.Value.(*cacheData).val, true
}

func (c *Cache) Put(key [KeySize]byte, val []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheData).val = val
		c.access.MoveToFront(elem)
		return
	}
	c.items[key] = c.access.PushFront(&cacheData{key: key, val: val})
	for len(c.items) > c.size {
		back := c.access.Back()
		delete(c.items, back.Value.(*cacheData).key)
		c.access.Remove(back)
	}
}

func (c *Cache) Remove(key [KeySize]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		delete(c.items, key)
		c.access.Remove(elem)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
