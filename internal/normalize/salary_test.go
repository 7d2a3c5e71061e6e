package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSalary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Salary
	}{
		{"day rate range", "£450-550/day", Salary{Min: 450, Max: 550, Period: "day"}},
		{"k suffix range", "$100k - $150k", Salary{Min: 100000, Max: 150000, Period: "year"}},
		{"annual with separator", "60,000 per annum", Salary{Min: 60000, Max: 60000, Period: "year"}},
		{"bare large number", "120000", Salary{Min: 120000, Max: 120000, Period: "year"}},
		{"dot thousand separator", "45.000 - 55.000 EUR yearly", Salary{Min: 45000, Max: 55000, Period: "year"}},
		{"reversed range fixed", "550 - 450 per day", Salary{Min: 450, Max: 550, Period: "day"}},
		{"single day rate", "600 p/d", Salary{Min: 600, Max: 600, Period: "day"}},
		{"no numbers", "competitive salary", Salary{}},
		{"empty", "", Salary{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSalary(tt.in))
		})
	}
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a    [2]int
		pa   string
		b    [2]int
		pb   string
		want bool
	}{
		{"overlapping annual", [2]int{60000, 80000}, "year", [2]int{70000, 90000}, "year", true},
		{"disjoint annual", [2]int{60000, 70000}, "year", [2]int{80000, 90000}, "year", false},
		{"touching bounds", [2]int{60000, 70000}, "year", [2]int{70000, 90000}, "year", true},
		{"unknown side matches anything", [2]int{0, 0}, "", [2]int{80000, 90000}, "year", true},
		{"day vs year never overlap", [2]int{450, 550}, "day", [2]int{60000, 80000}, "year", false},
		{"missing period is permissive", [2]int{450, 550}, "", [2]int{400, 500}, "day", true},
		{"open-ended minimum", [2]int{70000, 0}, "year", [2]int{60000, 80000}, "year", true},
		{"open-ended minimum admits higher range", [2]int{80000, 0}, "year", [2]int{90000, 110000}, "year", true},
		{"higher range admits open-ended minimum", [2]int{90000, 110000}, "year", [2]int{80000, 0}, "year", true},
		{"open-ended minimum still rejects lower range", [2]int{80000, 0}, "year", [2]int{50000, 70000}, "year", false},
		{"two open-ended minimums", [2]int{80000, 0}, "year", [2]int{200000, 0}, "year", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(tt.a[0], tt.a[1], tt.pa, tt.b[0], tt.b[1], tt.pb)
			assert.Equal(t, tt.want, got)
		})
	}
}
