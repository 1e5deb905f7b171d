package motion

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// maxDecimals bounds the precision accepted by FormatNumber.
const maxDecimals = 20

// FormatNumber renders v with exactly decimals fractional digits. Rounding is
// half away from zero at that precision. When grouped is set, the integer
// part gets en-US thousands separators; the fraction is never grouped.
// A value that rounds to zero has no minus sign.
func FormatNumber(v float64, decimals int, grouped bool) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if decimals < 0 {
		decimals = 0
	}
	if decimals > maxDecimals {
		decimals = maxDecimals
	}

	r := roundHalfAway(v, decimals)
	digits := strconv.FormatFloat(math.Abs(r), 'f', decimals, 64)

	intPart, frac, _ := strings.Cut(digits, ".")
	if grouped {
		n, ok := new(big.Int).SetString(intPart, 10)
		if ok {
			intPart = humanize.BigComma(n)
		}
	}

	var sb strings.Builder
	if r < 0 && !allZero(digits) {
		sb.WriteByte('-')
	}
	sb.WriteString(intPart)
	if decimals > 0 {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

func roundHalfAway(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	scaled := v * p
	if math.IsInf(scaled, 0) {
		return v
	}
	return math.Round(scaled) / p
}

func allZero(digits string) bool {
	for _, c := range digits {
		if c != '0' && c != '.' {
			return false
		}
	}
	return true
}
