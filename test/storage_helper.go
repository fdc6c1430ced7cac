package test

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"uwutoken/storage/badger"
)

// MemStorage is a map-backed badger.IStorage for tests.
type MemStorage struct {
	mu sync.RWMutex
	db map[string][]byte
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		db: make(map[string][]byte),
	}
}

func (st *MemStorage) GetData(key []byte) ([]byte, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	val, ok := st.db[string(key)]
	if !ok {
		return nil, badger.ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (st *MemStorage) SetData(key []byte, val []byte) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.db[string(key)] = append([]byte(nil), val...)
	return nil
}

func (st *MemStorage) DelData(key []byte) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.db, string(key))
	return nil
}

func (st *MemStorage) ForeachData(fn func(k []byte, v []byte) error) error {
	return st.PrefixForeachData(nil, fn)
}

// PrefixForeachData walks keys in lexical order, like badger does.
func (st *MemStorage) PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error {
	st.mu.RLock()
	keys := make([]string, 0, len(st.db))
	for key := range st.db {
		if strings.HasPrefix(key, string(prefix)) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	vals := make([][]byte, len(keys))
	for i, key := range keys {
		vals[i] = st.db[key]
	}
	st.mu.RUnlock()
	for i, key := range keys {
		if err := fn(bytes.TrimPrefix([]byte(key), prefix), vals[i]); err != nil {
			return err
		}
	}
	return nil
}

func (st *MemStorage) NewWriteBatch() *badger.StorageWriteBatch {
	return &badger.StorageWriteBatch{}
}

func (st *MemStorage) CommitWriteBatch(batch *badger.StorageWriteBatch) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return batch.Replay(func(key []byte, val []byte, del bool) error {
		if del {
			delete(st.db, string(key))
			return nil
		}
		st.db[string(key)] = append([]byte(nil), val...)
		return nil
	})
}

func (st *MemStorage) Close() error { return nil }

func (st *MemStorage) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.db)
}
