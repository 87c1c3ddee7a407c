package save

import "strconv"

// parseNumber reports whether s matches the save-file numeric grammar and
// returns its value. The grammar is deliberately narrower than Go's
// float syntax: an optional leading sign, one or more digits, and an
// optional single decimal point followed by digits. No exponents, no
// grouping separators, no leading or trailing point.
//
// Values are stored as float64: the format's own tooling tolerates float
// drift, so double precision is a deliberate, adequately lossy choice
// over arbitrary-precision fidelity. The source digits are kept alongside
// the value for faithful re-printing (see NewNumber).
func parseNumber(s string) (float64, bool) {
	if !isNumber(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isNumber reports whether s matches the numeric grammar above.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if digits == 0 {
		return false
	}
	if i == len(s) {
		return true
	}
	if s[i] != '.' {
		return false
	}
	i++
	frac := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		frac++
	}
	return frac > 0 && i == len(s)
}

// ParseNumber is the exported form of the numeric classifier, used by the
// parser to classify bare tokens.
func ParseNumber(s string) (float64, bool) {
	return parseNumber(s)
}

// IsNumber reports whether s matches the save-file numeric grammar.
func IsNumber(s string) bool {
	return isNumber(s)
}
