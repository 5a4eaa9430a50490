package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWithDecimals(t *testing.T) {
	assert.Equal(t, "0.024981836", FormatWithDecimals(24981836, 9))
	assert.Equal(t, "1.000000", FormatWithDecimals(1000000, 6))
	assert.Equal(t, "0.000001", FormatWithDecimals(1, 6))
}

func TestParseWithDecimals(t *testing.T) {
	n, err := ParseWithDecimals("0.024981836", 9)
	require.NoError(t, err)
	assert.Equal(t, uint64(24981836), n)

	n, err = ParseWithDecimals("5", 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000000), n)

	n, err = ParseWithDecimals("1.5", 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500000), n)
}

func TestParseWithDecimalsRejectsExcessPrecision(t *testing.T) {
	_, err := ParseWithDecimals("0.1234567", 6)
	assert.Error(t, err)
}

func TestParseWithDecimalsRejectsOverflow(t *testing.T) {
	// 19 * 10^18 exceeds uint64; must error, not wrap.
	_, err := ParseWithDecimals("19", 18)
	assert.Error(t, err)

	_, err = ParseWithDecimals("19.0", 18)
	assert.Error(t, err)

	n, err := ParseWithDecimals("18", 18)
	require.NoError(t, err)
	assert.Equal(t, uint64(18_000_000_000_000_000_000), n)
}

func TestParseWithDecimalsInvalid(t *testing.T) {
	for _, s := range []string{"", "1.2.3", "abc", "-1"} {
		_, err := ParseWithDecimals(s, 6)
		assert.Error(t, err, "input %q", s)
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("1.5", "USDC"))
	assert.NoError(t, ValidateAmount("0.000000001", "SOL"))
	assert.NoError(t, ValidateAmount("2", "eth"))

	assert.Error(t, ValidateAmount("0", "USDC"), "zero amount")
	assert.Error(t, ValidateAmount("1.5", "DOGE"), "unknown token")
	assert.Error(t, ValidateAmount("0.0000001", "USDC"), "below precision")
}
