package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Salary is a parsed compensation range. Min == Max for single figures.
// Period is "year" or "day"; "" when the string gave no hint either way.
type Salary struct {
	Min    int
	Max    int
	Period string
}

var (
	salaryNumberRe = regexp.MustCompile(`(\d{1,3}(?:[,.]\d{3})+|\d+(?:\.\d+)?)\s*([kK])?`)
	perDayRe       = regexp.MustCompile(`(?i)(per\s*day|/\s*day|daily|day\s*rate|p/?d\b)`)
	perYearRe      = regexp.MustCompile(`(?i)(per\s*(year|annum)|/\s*(year|yr)|annual|yearly|p\.?a\.?\b)`)
)

// ParseSalary extracts a numeric range from free-text salary strings
// like "£450-550/day", "$100k - $150k", "60,000 per annum" or "120000".
// Returns the zero Salary when nothing numeric is found.
func ParseSalary(raw string) Salary {
	var s Salary
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s
	}

	switch {
	case perDayRe.MatchString(raw):
		s.Period = "day"
	case perYearRe.MatchString(raw):
		s.Period = "year"
	}

	matches := salaryNumberRe.FindAllStringSubmatch(raw, 2)
	var values []int
	for _, m := range matches {
		n := parseNumber(m[1])
		if m[2] != "" {
			n *= 1000
		}
		if n > 0 {
			values = append(values, n)
		}
	}

	switch len(values) {
	case 0:
		return Salary{} // keep Period empty too: no numbers means no range
	case 1:
		s.Min, s.Max = values[0], values[0]
	default:
		s.Min, s.Max = values[0], values[1]
		if s.Min > s.Max {
			s.Min, s.Max = s.Max, s.Min
		}
	}

	// "450-550" with a day marker is a day rate; an unmarked range in the
	// thousands is almost always annual.
	if s.Period == "" && s.Min >= 10000 {
		s.Period = "year"
	}
	return s
}

func parseNumber(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	// "100.000" style thousand separators: only strip dots that separate
	// exactly three trailing digits.
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 == 3 {
		s = strings.ReplaceAll(s, ".", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// RangesOverlap reports whether two salary ranges intersect. A side with
// no data (both bounds zero) is treated as compatible with anything, and
// a declared minimum with no maximum is unbounded above: "at least 80k"
// must admit every posting paying 80k or more. Ranges in different known
// periods never overlap.
func RangesOverlap(minA, maxA int, periodA string, minB, maxB int, periodB string) bool {
	if (minA == 0 && maxA == 0) || (minB == 0 && maxB == 0) {
		return true
	}
	if periodA != "" && periodB != "" && periodA != periodB {
		return false
	}
	if maxA == 0 {
		maxA = math.MaxInt
	}
	if maxB == 0 {
		maxB = math.MaxInt
	}
	return minA <= maxB && minB <= maxA
}
