package collector

import (
	"regexp"
	"strconv"
	"strings"
)

// Trading-day rows per period unit.
const (
	RowsPerDay   = 1
	RowsPerMonth = 21
	RowsPerYear  = 252

	DefaultPeriod = "1y"
)

var periodPattern = regexp.MustCompile(`^(\d+)(d|mo|y)$`)

// ParsePeriod converts "Nd", "Nmo" or "Ny" into an approximate trading-day row
// count. Invalid periods yield one year.
func ParsePeriod(period string) int {
	m := periodPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(period)))
	if m == nil {
		return RowsPerYear
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return RowsPerYear
	}
	switch m[2] {
	case "d":
		return n * RowsPerDay
	case "mo":
		return n * RowsPerMonth
	default:
		return n * RowsPerYear
	}
}

// yahooRange picks the smallest Yahoo chart range covering rows trading days.
func yahooRange(rows int) string {
	switch {
	case rows <= 5:
		return "5d"
	case rows <= RowsPerMonth:
		return "1mo"
	case rows <= 3*RowsPerMonth:
		return "3mo"
	case rows <= 6*RowsPerMonth:
		return "6mo"
	case rows <= RowsPerYear:
		return "1y"
	case rows <= 2*RowsPerYear:
		return "2y"
	case rows <= 5*RowsPerYear:
		return "5y"
	default:
		return "max"
	}
}
