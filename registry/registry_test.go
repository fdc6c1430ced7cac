package registry

import (
	"testing"

	"uwutoken/storage/badger"
	"uwutoken/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, reg Registry) {
	_, err := reg.Resolve("uwu_token")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, reg.Register("uwu_token", &Entry{
		Kind:     KindContract,
		Address:  "0xABC",
		Contract: "UwuToken",
		TxHash:   "0x1",
	}))
	require.NoError(t, reg.Register("ACCOUNT_A", &Entry{
		Kind:    KindAccount,
		Address: "0x1234",
	}))

	entry, err := reg.Resolve("uwu_token")
	require.NoError(t, err)
	assert.Equal(t, "uwu_token", entry.Alias)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", entry.Address)
	assert.Equal(t, "localhost", entry.Network)
	assert.NotZero(t, entry.CreatedAt)

	_, err = ResolveKind(reg, "uwu_token", KindAccount)
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = ResolveKind(reg, "ACCOUNT_A", KindAccount)
	assert.NoError(t, err)

	entries, err := reg.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ACCOUNT_A", entries[0].Alias)
	assert.Equal(t, "uwu_token", entries[1].Alias)

	assert.ErrorIs(t, reg.Register("", &Entry{Address: "0x1"}), ErrEmptyAlias)
	assert.Error(t, reg.Register("bad", &Entry{Address: "nothex"}))

	require.NoError(t, reg.Remove("ACCOUNT_A"))
	assert.ErrorIs(t, reg.Remove("ACCOUNT_A"), ErrNotFound)
}

func TestMemRegistry(t *testing.T) {
	testRegistry(t, NewMemory("localhost"))
}

func TestDBRegistry(t *testing.T) {
	testRegistry(t, New(test.NewMemStorage(), "localhost"))
}

func TestDBRegistryNetworks(t *testing.T) {
	db := test.NewMemStorage()
	local := New(db, "localhost")
	goerli := New(db, "goerli")
	require.NoError(t, local.Register("uwu_token", &Entry{Kind: KindContract, Address: "0x1"}))

	_, err := goerli.Resolve("uwu_token")
	assert.ErrorIs(t, err, ErrNotFound)
	entries, err := goerli.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDBRegistryNetworkNamesDoNotOverlap(t *testing.T) {
	db := test.NewMemStorage()
	local := New(db, "local")
	fork := New(db, "local:fork")
	err := fork.Register("uwu_token", &Entry{Kind: KindContract, Address: "0x1"})
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorIs(t, local.Register("fork:uwu_token", &Entry{Kind: KindContract, Address: "0x1"}), ErrInvalidName)

	// an entry stored under an extended network name stays invisible
	require.NoError(t, db.SetData([]byte("alias:local:fork:uwu_token"),
		[]byte(`{"alias":"uwu_token","kind":"contract","address":"0x1","network":"local:fork"}`)))
	entries, err := local.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, err = local.Resolve("fork:uwu_token")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, local.Remove("fork:uwu_token"), ErrNotFound)
	assert.Equal(t, 1, db.Len())
}

func TestMemRegistryRejectsSeparator(t *testing.T) {
	reg := NewMemory("local:fork")
	assert.ErrorIs(t, reg.Register("uwu_token", &Entry{Kind: KindContract, Address: "0x1"}), ErrInvalidName)
	assert.ErrorIs(t, NewMemory("local").Register("a:b", &Entry{Kind: KindAccount, Address: "0x1"}), ErrInvalidName)
}

func TestDBRegistryPersists(t *testing.T) {
	dir := t.TempDir()
	db, err := badger.New(dir)
	require.NoError(t, err)
	require.NoError(t, New(db, "localhost").Register("ACCOUNT_B", &Entry{
		Kind:    KindAccount,
		Address: "0x42",
	}))
	require.NoError(t, db.Close())

	db, err = badger.New(dir)
	require.NoError(t, err)
	defer db.Close()
	entry, err := New(db, "localhost").Resolve("ACCOUNT_B")
	require.NoError(t, err)
	assert.Equal(t, KindAccount, entry.Kind)
}
