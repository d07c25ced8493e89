package utils_test

import (
	"testing"

	"github.com/SscSPs/biz_finance_tracker/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.833333", "0.83"},
		{"0.625", "0.63"},
		{"6000", "6000.00"},
		{"203.906885", "203.91"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.FormatAmount(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestFormatNullableAmount(t *testing.T) {
	assert.Equal(t, "-", utils.FormatNullableAmount(decimal.NullDecimal{}))
	assert.Equal(t, "0.00", utils.FormatNullableAmount(decimal.NewNullDecimal(decimal.Zero)))
	assert.Equal(t, "12.35", utils.FormatNullableAmount(decimal.NewNullDecimal(decimal.RequireFromString("12.345"))))
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "12", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 0))
	assert.Equal(t, "12.3456", utils.FormatWithPrecision(decimal.RequireFromString("12.3456"), 4))
}
