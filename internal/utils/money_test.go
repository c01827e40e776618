package utils

import (
	"testing"

	"matwana/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"150", 15000},
		{"150.5", 15050},
		{"150.50", 15050},
		{"0.01", 1},
		{"KES 1000", 100000},
		{" 99.99 ", 9999},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseAmountRejectsExcessPrecision(t *testing.T) {
	// Two decimal places is the limit; finer input is refused, not rounded.
	for _, in := range []string{"10.001", "0.999", "150.505"} {
		_, err := ParseAmount(in)
		assert.True(t, domain.IsValidation(err), in)
	}
}

func TestParseAmountRejectsJunk(t *testing.T) {
	for _, in := range []string{"", "abc", "1,000", "10.x0"} {
		_, err := ParseAmount(in)
		assert.True(t, domain.IsValidation(err), in)
	}
}

func TestParseAmountKeepsSign(t *testing.T) {
	got, err := ParseAmount("-25.50")
	assert.NoError(t, err)
	assert.Equal(t, int64(-2550), got)

	assert.True(t, domain.IsValidation(ValidatePositiveAmount(got)))
	assert.True(t, domain.IsValidation(ValidatePositiveAmount(0)))
	assert.NoError(t, ValidatePositiveAmount(1))
}

func TestFormatKES(t *testing.T) {
	assert.Equal(t, "KES 0.00", FormatKES(0))
	assert.Equal(t, "KES 150.00", FormatKES(15000))
	assert.Equal(t, "KES 1,500.50", FormatKES(150050))
	assert.Equal(t, "-KES 25.05", FormatKES(-2505))
}
