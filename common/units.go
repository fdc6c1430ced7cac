package common

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// TokenDecimals is the number of fractional digits of UwuToken.
const TokenDecimals = int32(18)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrAmountOverflow = errors.New("amount exceeds uint256")
)

// ToDecimals scales a display amount to raw token units. Digits beyond
// the token precision are rounded half away from zero.
func ToDecimals(x decimal.Decimal, decimals int32) (*uint256.Int, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, x)
	}
	raw := x.Shift(decimals).Round(0)
	v, overflow := uint256.FromBig(raw.BigInt())
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrAmountOverflow, x)
	}
	return v, nil
}

// FromDecimals converts raw token units back to a display amount.
func FromDecimals(raw *uint256.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(raw.ToBig(), -decimals)
}

// ParseAmount reads a display amount such as "0.5" or "1337".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeAmount, s)
	}
	return d, nil
}

// ParseUint parses a decimal or 0x-prefixed integer.
func ParseUint(s string) (*uint256.Int, error) {
	if has0xPrefix(s) {
		return FromHex(s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if !d.Equal(d.Truncate(0)) {
		return nil, fmt.Errorf("not an integer: %s", s)
	}
	return ToDecimals(d, 0)
}
