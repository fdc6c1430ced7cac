package common

import (
	"uwutoken/common/ahash"

	"github.com/holiman/uint256"
)

var selectorMask = new(uint256.Int).Sub(
	new(uint256.Int).Lsh(uint256.NewInt(1), 250), uint256.NewInt(1))

// Selector returns the entry point selector of a contract function:
// keccak256(name) truncated to 250 bits.
func Selector(name string) *uint256.Int {
	v := new(uint256.Int).SetBytes(ahash.Keccak256([]byte(name)))
	return v.And(v, selectorMask)
}

// SelectorHex is Selector rendered for the wire.
func SelectorHex(name string) string {
	return FeltHex(Selector(name))
}
