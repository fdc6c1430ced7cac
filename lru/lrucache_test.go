package lru

import (
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func makeKey(n uint64) [KeySize]byte {
	return uint256.NewInt(n).Bytes32()
}

func TestCache_Get(t *testing.T) {
	size := 100
	cache := NewCache(size)
	for i := 0; i < size; i++ {
		cache.Put(makeKey(uint64(i)), []byte(fmt.Sprintf("val%d", i)))
	}
	for i := 0; i < size; i++ {
		val, exists := cache.Get(makeKey(uint64(i)))
		if !exists || string(val) != fmt.Sprintf("val%d", i) {
			t.Fatalf("not found key: %d", i)
		}
	}
	if val, exists := cache.Get(makeKey(uint64(size + 1))); exists || val != nil {
		t.Fatalf("Invalid query")
	}
}

func TestCache_Evict(t *testing.T) {
	cache := NewCache(2)
	cache.Put(makeKey(1), []byte("a"))
	cache.Put(makeKey(2), []byte("b"))
	_, _ = cache.Get(makeKey(1))
	cache.Put(makeKey(3), []byte("c"))

	_, ok := cache.Get(makeKey(2))
	assert.False(t, ok)
	_, ok = cache.Get(makeKey(1))
	assert.True(t, ok)
	assert.Equal(t, 2, cache.Len())

	cache.Put(makeKey(1), []byte("z"))
	val, _ := cache.Get(makeKey(1))
	assert.Equal(t, []byte("z"), val)

	cache.Remove(makeKey(1))
	assert.Equal(t, 1, cache.Len())
}
