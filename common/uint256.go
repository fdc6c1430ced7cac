package common

import (
	"errors"

	"github.com/holiman/uint256"
)

var ErrUintPart = errors.New("uint256 part exceeds 128 bits")

var (
	uintPartLimit = new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	uintPartMask  = new(uint256.Int).Sub(uintPartLimit, uint256.NewInt(1))
)

// ToUint splits x into the (low, high) 128-bit words of a Cairo Uint256.
func ToUint(x *uint256.Int) (low, high *uint256.Int) {
	low = new(uint256.Int).And(x, uintPartMask)
	high = new(uint256.Int).Rsh(x, 128)
	return
}

// FromUint joins a (low, high) pair into low + high*2^128.
func FromUint(low, high *uint256.Int) (*uint256.Int, error) {
	if !low.Lt(uintPartLimit) || !high.Lt(uintPartLimit) {
		return nil, ErrUintPart
	}
	v := new(uint256.Int).Lsh(high, 128)
	return v.Or(v, low), nil
}
