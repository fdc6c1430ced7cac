package badger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageSetGetDel(t *testing.T) {
	db, err := New(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SetData([]byte("k"), []byte("v")))
	val, err := db.GetData([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, db.DelData([]byte("k")))
	_, err = db.GetData([]byte("k"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoragePrefixForeach(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SetData([]byte("a:2"), []byte("two")))
	require.NoError(t, db.SetData([]byte("a:1"), []byte("one")))
	require.NoError(t, db.SetData([]byte("b:1"), []byte("other")))

	var keys []string
	err = db.PrefixForeachData([]byte("a:"), func(k []byte, v []byte) error {
		keys = append(keys, string(k))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, keys)
}

func TestStorageWriteBatch(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SetData([]byte("gone"), []byte("x")))
	batch := db.NewWriteBatch()
	batch.Put([]byte("x"), []byte("1"))
	batch.Put([]byte("y"), []byte("2"))
	batch.Del([]byte("gone"))
	assert.Equal(t, 3, batch.Len())
	require.NoError(t, db.CommitWriteBatch(batch))

	val, err := db.GetData([]byte("y"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
	_, err = db.GetData([]byte("gone"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorageReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, db.SetData([]byte("persist"), []byte("yes")))
	require.NoError(t, db.Close())

	db, err = New(dir)
	require.NoError(t, err)
	defer db.Close()
	val, err := db.GetData([]byte("persist"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), val)
	assert.Equal(t, dir, db.GetDBPath())
}
