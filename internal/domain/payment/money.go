package payment

import (
	"math"
	"strconv"
	"strings"
)

// ToCents converts an amount in reais to int64 centavos, rounding half
// away from zero. All monetary arithmetic in the system runs on centavos;
// float64 only appears at the JSON boundary.
func ToCents(reais float64) int64 {
	if math.IsNaN(reais) || math.IsInf(reais, 0) {
		return 0
	}
	return int64(math.Round(reais * 100))
}

// ToReais converts centavos back to reais for JSON output.
func ToReais(cents int64) float64 {
	return float64(cents) / 100
}

// ParseAmountBR parses a numeric string that may use Brazilian notation
// ("1.234,56"), plain notation ("1234.56") or bare digits ("100") into
// centavos. Anything unparseable or negative yields 0, never an error:
// legacy data must not abort a report.
func ParseAmountBR(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// both separators present: the later one is the decimal mark
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ",") > 1:
		// multiple commas with no dot: thousands separators
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		// multiple dots with no comma: thousands separators
		s = strings.ReplaceAll(s, ".", "")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return ToCents(value)
}
