package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeAmount(t *testing.T) {
	amount := MakeAmount(10_000_000_000)
	want, _ := new(big.Int).SetString("10000000000000000000000000000", 10)
	assert.Equal(t, 0, amount.Value().Cmp(want))
}

func TestAmount_DisplayString(t *testing.T) {
	raw, _ := new(big.Int).SetString("5000000000123456789000000000", 10)
	amount := NewAmount(raw)

	tests := []struct {
		name      string
		comma     bool
		precision int
		want      string
	}{
		{name: "grouped", comma: true, want: "5,000,000,000"},
		{name: "plain", comma: false, want: "5000000000"},
		{name: "two decimals truncated", comma: true, precision: 2, want: "5,000,000,000.12"},
		{name: "precision capped", comma: false, precision: 30, want: "5000000000.123456789000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, amount.DisplayString(tt.comma, tt.precision))
		})
	}
}

func TestAmount_SmallValues(t *testing.T) {
	assert.Equal(t, "0.05", NewAmount(big.NewInt(5e16)).DisplayString(true, 2))
	assert.Equal(t, "0", NewAmount(nil).String())
	assert.Equal(t, "0.00", Amount{}.DisplayString(false, 2))
}

func TestAmount_Negative(t *testing.T) {
	raw, _ := new(big.Int).SetString("-1234500000000000000000", 10)
	amount := NewAmount(raw)

	assert.Equal(t, "-1,234.50", amount.DisplayString(true, 2))
	assert.Equal(t, "-1234", amount.DisplayString(false, 0))
	assert.Equal(t, "-0.25", NewAmount(big.NewInt(-25e16)).DisplayString(true, 2))
	assert.Equal(t, "0", NewAmount(big.NewInt(-1)).DisplayString(true, 0))
	assert.Equal(t, 0, amount.Value().Cmp(raw), "formatting must not change the amount")
}

func TestAmount_IsImmutable(t *testing.T) {
	raw := big.NewInt(1)
	amount := NewAmount(raw)
	raw.SetInt64(2)
	assert.Equal(t, int64(1), amount.Value().Int64())

	value := amount.Value()
	value.SetInt64(3)
	assert.Equal(t, int64(1), amount.Value().Int64())
}

func TestAmount_Cmp(t *testing.T) {
	assert.Equal(t, 1, MakeAmount(10).Cmp(MakeAmount(5)))
	assert.Equal(t, 0, MakeAmount(5).Cmp(MakeAmount(5)))
	assert.Equal(t, -1, Amount{}.Cmp(MakeAmount(1)))
}
