package common

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ShortStringMaxLen is the longest ASCII string that packs into one felt.
const ShortStringMaxLen = 31

var ErrShortString = errors.New("invalid short string")

// IsFelt reports whether f is below the field prime.
func IsFelt(f *uint256.Int) bool {
	return f != nil && f.Lt(FieldPrime)
}

// StrToFelt packs ASCII text big-endian into a single felt.
func StrToFelt(s string) (*uint256.Int, error) {
	if len(s) > ShortStringMaxLen {
		return nil, fmt.Errorf("%w: %q longer than %d bytes", ErrShortString, s, ShortStringMaxLen)
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return nil, fmt.Errorf("%w: %q is not ascii", ErrShortString, s)
		}
	}
	return new(uint256.Int).SetBytes([]byte(s)), nil
}

// FeltToStr unpacks a short string felt.
func FeltToStr(f *uint256.Int) string {
	return string(f.Bytes())
}

func FeltsToHex(felts []*uint256.Int) []string {
	out := make([]string, len(felts))
	for i, f := range felts {
		out[i] = FeltHex(f)
	}
	return out
}

// FeltsFromHex parses calldata and rejects values outside the field.
func FeltsFromHex(data []string) ([]*uint256.Int, error) {
	out := make([]*uint256.Int, len(data))
	for i, s := range data {
		f, err := FromHex(s)
		if err != nil {
			return nil, err
		}
		if !IsFelt(f) {
			return nil, fmt.Errorf("%w: %s", ErrNotFelt, s)
		}
		out[i] = f
	}
	return out, nil
}
