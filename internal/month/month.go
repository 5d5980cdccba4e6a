// Package month models the "YYYY-MM" labels the simulation steps through.
// Months are plain calendar arithmetic; no time zone or day-of-month is
// involved anywhere in the system.
package month

import (
	"fmt"
	"strconv"
	"strings"
)

// Month is a single calendar month, e.g. 2020-01.
type Month struct {
	Year int
	Mon  int // 1..12
}

// Parse parses a "YYYY-MM" label.
func Parse(s string) (Month, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return Month{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %v", s, err)
	}
	mon, err := strconv.Atoi(parts[1])
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %v", s, err)
	}
	if mon < 1 || mon > 12 {
		return Month{}, fmt.Errorf("invalid month %q: month out of range", s)
	}
	return Month{Year: year, Mon: mon}, nil
}

// MustParse is Parse for labels known to be valid (config defaults, tests).
func MustParse(s string) Month {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Mon)
}

// Next returns the following month, rolling December into January of the
// next year.
func (m Month) Next() Month {
	if m.Mon == 12 {
		return Month{Year: m.Year + 1, Mon: 1}
	}
	return Month{Year: m.Year, Mon: m.Mon + 1}
}

// Compare orders months chronologically: -1, 0 or +1.
func (m Month) Compare(o Month) int {
	switch {
	case m.Year != o.Year:
		if m.Year < o.Year {
			return -1
		}
		return 1
	case m.Mon != o.Mon:
		if m.Mon < o.Mon {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (m Month) Before(o Month) bool { return m.Compare(o) < 0 }

func (m Month) After(o Month) bool { return m.Compare(o) > 0 }

func (m Month) IsZero() bool { return m.Year == 0 && m.Mon == 0 }
