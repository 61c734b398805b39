package decimals

import (
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"
)

// ToDecimal scales an integer amount down by 10^divisibility.
func ToDecimal(amount uint128.Uint128, divisibility uint8) decimal.Decimal {
	return decimal.NewFromBigInt(amount.Big(), -int32(divisibility))
}

// FormatAmount renders amount with exactly divisibility fractional digits.
func FormatAmount(amount uint128.Uint128, divisibility uint8) string {
	return ToDecimal(amount, divisibility).StringFixed(int32(divisibility))
}
