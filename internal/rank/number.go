package rank

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is returned by ExpandNum for input that is not a number.
var ErrInvalidNumber = errors.New("rank: invalid number")

// multipliers maps a unit suffix to a decimal exponent.
var multipliers = map[byte]string{
	'K': "e3",
	'M': "e6",
	'B': "e9",
}

// ExpandNum converts an abbreviated count to a number:
// "61.8K" is 61800, "61.8M" is 61800000, "1.2B" is 1200000000 and
// unsuffixed input is parsed as is. Thousands separators and surrounding
// spaces are ignored, and suffixes are case-insensitive.
func ExpandNum(s string) (float64, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if raw == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	last := raw[len(raw)-1]
	if exp, ok := multipliers[upper(last)]; ok {
		raw = strings.TrimSpace(raw[:len(raw)-1]) + exp
	}

	// Scaling through the exponent keeps 61.8K exact where 61.8*1000 is not.
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return n, nil
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
