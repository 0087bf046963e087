package domain

import (
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TokenDecimals is the fixed-point precision of the ACC token family
const TokenDecimals = 18

var (
	unit    = new(big.Int).Exp(big.NewInt(10), big.NewInt(TokenDecimals), nil)
	printer = message.NewPrinter(language.English)
)

// Amount is a token quantity held in the token's smallest unit
type Amount struct {
	value *big.Int
}

// MakeAmount returns an amount of whole tokens
func MakeAmount(tokens int64) Amount {
	return Amount{value: new(big.Int).Mul(big.NewInt(tokens), unit)}
}

// NewAmount wraps a raw smallest-unit value
func NewAmount(raw *big.Int) Amount {
	if raw == nil {
		return Amount{value: new(big.Int)}
	}
	return Amount{value: new(big.Int).Set(raw)}
}

// Value returns a copy of the raw smallest-unit value
func (a Amount) Value() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(a.value)
}

// Cmp compares two amounts like big.Int.Cmp
func (a Amount) Cmp(b Amount) int {
	return a.Value().Cmp(b.Value())
}

// String renders whole tokens with thousands separators
func (a Amount) String() string {
	return a.DisplayString(true, 0)
}

// DisplayString renders the amount in whole tokens, optionally grouping the
// integer part, with precision fractional digits (truncated, not rounded).
func (a Amount) DisplayString(comma bool, precision int) string {
	value := a.Value()
	if value.Sign() < 0 {
		abs := NewAmount(value.Abs(value)).DisplayString(comma, precision)
		if strings.Trim(abs, "0.,") == "" {
			return abs
		}
		return "-" + abs
	}
	integer, fraction := new(big.Int).QuoRem(value, unit, new(big.Int))

	var sb strings.Builder
	if comma && integer.IsInt64() {
		sb.WriteString(printer.Sprintf("%d", integer.Int64()))
	} else {
		sb.WriteString(integer.String())
	}

	if precision <= 0 {
		return sb.String()
	}
	if precision > TokenDecimals {
		precision = TokenDecimals
	}

	digits := fraction.String()
	digits = strings.Repeat("0", TokenDecimals-len(digits)) + digits
	sb.WriteByte('.')
	sb.WriteString(digits[:precision])
	return sb.String()
}
