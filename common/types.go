package common

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

const (
	// AddrHexLen is the number of hex digits an address is padded to.
	AddrHexLen = 64
)

var (
	ErrInvalidHex  = errors.New("invalid hex string")
	ErrHexOverflow = errors.New("hex number exceeds 256 bits")
	ErrNotFelt     = errors.New("value is not a field element")
)

// FieldPrime is the order of the StarkNet field, 2^251 + 17*2^192 + 1.
var FieldPrime = func() *uint256.Int {
	p := new(uint256.Int).Lsh(uint256.NewInt(1), 251)
	p.Add(p, new(uint256.Int).Lsh(uint256.NewInt(17), 192))
	return p.AddUint64(p, 1)
}()

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// FromHex parses a base-16 string with or without the 0x prefix.
// Leading zeros are accepted.
func FromHex(s string) (*uint256.Int, error) {
	h := s
	if has0xPrefix(h) {
		h = h[2:]
	}
	if h == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
	}
	b, ok := new(big.Int).SetString(h, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("%w: %q", ErrHexOverflow, s)
	}
	return v, nil
}

// MustFromHex is like FromHex but panics on malformed input.
func MustFromHex(s string) *uint256.Int {
	v, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FeltHex renders a felt as a minimal 0x-prefixed lowercase hex string.
func FeltHex(f *uint256.Int) string {
	return "0x" + f.ToBig().Text(16)
}

// AddressHex renders an address felt zero-padded to AddrHexLen digits.
func AddressHex(f *uint256.Int) string {
	return fmt.Sprintf("0x%0*x", AddrHexLen, f.ToBig())
}

// NormalizeAddress parses and re-renders an address so that equal
// addresses compare equal as strings.
func NormalizeAddress(s string) (string, error) {
	v, err := FromHex(s)
	if err != nil {
		return "", err
	}
	if !IsFelt(v) {
		return "", fmt.Errorf("%w: %s", ErrNotFelt, s)
	}
	return AddressHex(v), nil
}

// IsAddress reports whether s looks like a 0x-prefixed address rather than an alias.
func IsAddress(s string) bool {
	if !has0xPrefix(s) {
		return false
	}
	_, err := FromHex(s)
	return err == nil
}
