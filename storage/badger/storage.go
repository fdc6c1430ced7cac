package badger

import (
	"bytes"
	"errors"

	badgerdb "github.com/dgraph-io/badger/v3"
)

var ErrNotFound = errors.New("key not found")

// IStorage is the key-value surface the registry and the devnet state use.
type IStorage interface {
	GetData(key []byte) ([]byte, error)
	SetData(key []byte, val []byte) error
	DelData(key []byte) error
	ForeachData(fn func(k []byte, v []byte) error) error
	PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error
	NewWriteBatch() *StorageWriteBatch
	CommitWriteBatch(batch *StorageWriteBatch) error
	Close() error
}

type batchOp struct {
	key []byte
	val []byte
	del bool
}

// StorageWriteBatch collects writes that are applied in one transaction.
type StorageWriteBatch struct {
	ops []batchOp
}

func (b *StorageWriteBatch) Put(key []byte, val []byte) {
	b.ops = append(b.ops, batchOp{key: key, val: val})
}

func (b *StorageWriteBatch) Del(key []byte) {
	b.ops = append(b.ops, batchOp{key: key, del: true})
}

func (b *StorageWriteBatch) Len() int {
	return len(b.ops)
}

// Replay feeds the batch to fn in insertion order.
func (b *StorageWriteBatch) Replay(fn func(key []byte, val []byte, del bool) error) error {
	for _, op := range b.ops {
		if err := fn(op.key, op.val, op.del); err != nil {
			return err
		}
	}
	return nil
}

type Storage struct {
	path string
	db   *badgerdb.DB
}

// New opens (or creates) a badger database in dir.
func New(dir string) (*Storage, error) {
	opts := badgerdb.DefaultOptions(dir).WithLogger(nil)
	return open(dir, opts)
}

// NewInMemory opens a badger database that never touches the disk.
func NewInMemory() (*Storage, error) {
	opts := badgerdb.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	return open("", opts)
}

func open(dir string, opts badgerdb.Options) (*Storage, error) {
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{path: dir, db: db}, nil
}

func (s *Storage) GetDBPath() string {
	return s.path
}

func (s *Storage) GetData(key []byte) (val []byte, err error) {
	err = s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (s *Storage) SetData(key []byte, val []byte) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(key, val)
	})
}

func (s *Storage) DelData(key []byte) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Delete(key)
	})
}

func (s *Storage) ForeachData(fn func(k []byte, v []byte) error) error {
	return s.PrefixForeachData(nil, fn)
}

func (s *Storage) PrefixForeachData(prefix []byte, fn func(k []byte, v []byte) error) error {
	return s.db.View(func(txn *badgerdb.Txn) error {
		it := txn.NewIterator(badgerdb.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.KeyCopy(nil)
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err = fn(bytes.TrimPrefix(k, prefix), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) NewWriteBatch() *StorageWriteBatch {
	return &StorageWriteBatch{}
}

func (s *Storage) CommitWriteBatch(batch *StorageWriteBatch) error {
	return s.db.Update(func(txn *badgerdb.Txn) error {
		return batch.Replay(func(key []byte, val []byte, del bool) error {
			if del {
				return txn.Delete(key)
			}
			return txn.Set(key, val)
		})
	})
}

func (s *Storage) Close() error {
	return s.db.Close()
}
