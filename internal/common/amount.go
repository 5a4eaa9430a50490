package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	SOLDecimals  = 9  // SOL has 9 decimals (lamports)
	USDCDecimals = 6  // USDC has 6 decimals (micro)
	ETHDecimals  = 18 // ETH has 18 decimals (wei)
)

// TokenDecimals returns the decimal precision for a known token symbol.
func TokenDecimals(symbol string) (int, error) {
	switch strings.ToUpper(symbol) {
	case "SOL":
		return SOLDecimals, nil
	case "USDC":
		return USDCDecimals, nil
	case "ETH", "WETH":
		return ETHDecimals, nil
	default:
		return 0, fmt.Errorf("unknown token: %s", symbol)
	}
}

// ValidateAmount checks that s is a positive decimal string not exceeding
// the token's precision. Amounts never pass through floats.
func ValidateAmount(s, symbol string) error {
	decimals, err := TokenDecimals(symbol)
	if err != nil {
		return err
	}

	n, err := ParseWithDecimals(s, decimals)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if n == 0 {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// FormatWithDecimals converts an integer unit count to a decimal string by
// inserting the decimal point.
// Example: FormatWithDecimals(24981836, 9) = "0.024981836"
func FormatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

// ParseWithDecimals converts a decimal string to integer units by removing
// the decimal point.
// Example: ParseWithDecimals("0.024981836", 9) = 24981836
func ParseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}

	parts := strings.Split(s, ".")

	if len(parts) == 1 {
		// No decimal point - append 10^decimals zeros. ParseUint rejects
		// values past uint64 instead of wrapping.
		if _, err := strconv.ParseUint(parts[0], 10, 64); err != nil {
			return 0, err
		}
		return strconv.ParseUint(parts[0]+strings.Repeat("0", decimals), 10, 64)
	}

	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	frac := parts[1]

	// Reject amounts below the token's precision instead of silently
	// truncating them.
	if len(frac) > decimals {
		return 0, fmt.Errorf("too many decimal places: %d (max %d)", len(frac), decimals)
	}
	if len(frac) < decimals {
		frac += strings.Repeat("0", decimals-len(frac))
	}

	combined := whole + frac
	return strconv.ParseUint(combined, 10, 64)
}
