package calc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ResultDecimals is the number of fractional digits non-integer results are rounded to
const ResultDecimals = 8

// FormatResult renders an evaluation result for display and history.
// Integers are printed without a fractional part; anything else is rounded
// to ResultDecimals digits with trailing zeros and a bare decimal point removed.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == math.Trunc(v) {
		return NumberString(v)
	}

	s := toFixed(v, ResultDecimals)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// NumberString renders v the way the memory register is shown and recalled:
// the shortest decimal that round-trips, switching to exponent form outside
// [1e-6, 1e21).
func NumberString(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero too
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// strconv pads the exponent to two digits ("1e-07"); drop the padding
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

// toFixed formats v with a fixed number of fractional digits. Exact ties are
// rounded away from zero rather than to even.
func toFixed(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'f', digits, 64)

	scaled := new(big.Float).SetPrec(256).SetFloat64(math.Abs(v))
	scaled.Mul(scaled, new(big.Float).SetPrec(256).SetFloat64(math.Pow10(digits)))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetPrec(256).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return s
	}

	whole.Add(whole, big.NewInt(1))
	t := whole.String()
	for len(t) <= digits {
		t = "0" + t
	}
	t = t[:len(t)-digits] + "." + t[len(t)-digits:]
	if v < 0 {
		t = "-" + t
	}
	return t
}

// ParseLeadingFloat reads the longest numeric prefix of s, ignoring leading
// whitespace and anything after the number ("12+3" is 12). It returns NaN
// when s does not start with a number. "Infinity" with an optional sign is
// accepted.
func ParseLeadingFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if mantissa > 0 || frac > 0 {
			i = j
			mantissa += frac
		}
	}
	if mantissa == 0 {
		return math.NaN()
	}

	// Only take the exponent if it has digits: "2e" parses as 2
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		start := j
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j > start {
			i = j
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
