package common

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x0", "0"},
		{"0x1f", "31"},
		{"1f", "31"},
		{"0X1F", "31"},
		{"0x000000000000000000000000000000000000000000000000000000000000ff", "255"},
		{"ff", "255"},
	}
	for _, tt := range tests {
		got, err := FromHex(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got.ToBig().String(), tt.in)
	}
}

func TestFromHexMatchesBigInt(t *testing.T) {
	s := "0x6a0b3b4f4d1c2e9f5c7d8b9a0e1f2d3c4b5a69788796a5b4c3d2e1f0a9b8c7d"
	want, ok := new(big.Int).SetString(s[2:], 16)
	require.True(t, ok)
	got, err := FromHex(s)
	require.NoError(t, err)
	assert.Equal(t, 0, want.Cmp(got.ToBig()))
}

func TestFromHexInvalid(t *testing.T) {
	for _, s := range []string{"", "0x", "0xzz", "hello", "-1", "+1", "0x1_0"} {
		_, err := FromHex(s)
		assert.ErrorIs(t, err, ErrInvalidHex, s)
	}
	_, err := FromHex("0x1" + "0000000000000000000000000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrHexOverflow)
}

func TestAddressHex(t *testing.T) {
	addr := AddressHex(uint256.NewInt(0xabc))
	assert.Len(t, addr, 2+AddrHexLen)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000abc", addr)

	n, err := NormalizeAddress("ABC")
	require.NoError(t, err)
	assert.Equal(t, addr, n)
}

func TestIsAddress(t *testing.T) {
	assert.True(t, IsAddress("0x1234"))
	assert.False(t, IsAddress("uwu_token"))
	assert.False(t, IsAddress("1234"))
	assert.False(t, IsAddress("0xnope"))
}
