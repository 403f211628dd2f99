// Package releasedate turns the store's human readable release dates into estimates.
//
// An estimate is an upper bound: "Apr 2025" means "some time in April", so the estimate
// is the first instant of May. Estimates are for ordering and alerting, never for display.
package releasedate

import (
	"strconv"
	"strings"
	"time"
)

var (
	dayLayouts   = []string{"2 Jan 2006", "2 January 2006"}
	monthLayouts = []string{"Jan 2006", "January 2006"}
)

var quarterEndMonth = map[byte]string{
	'1': "Mar",
	'2': "Jun",
	'3': "Sep",
	'4': "Dec",
}

// Parse estimates the instant by which a release described by text will have happened.
// It returns nil for explicitly unknown dates and for anything it cannot read.
func Parse(text string) *time.Time {
	if text == "To be announced" || text == "Coming soon" {
		return nil
	}

	clean := strings.TrimSpace(strings.ReplaceAll(text, ",", ""))

	// "5 Jan 2020"
	for _, layout := range dayLayouts {
		if d, err := time.Parse(layout, clean); err == nil {
			return utc(d)
		}
	}

	// "2025" counts as the whole year.
	if isYear(clean) {
		if year, err := strconv.Atoi(clean); err == nil {
			return utc(time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
	}

	// "Q2 2025" becomes "Jun 2025".
	if strings.HasPrefix(clean, "Q") {
		if len(clean) < 4 || clean[2] != ' ' {
			return nil
		}
		month, ok := quarterEndMonth[clean[1]]
		if !ok {
			return nil
		}
		clean = month + clean[2:]
	}

	// "Mar 2025" counts as the whole month.
	for _, layout := range monthLayouts {
		if d, err := time.Parse(layout, clean); err == nil {
			return utc(d.AddDate(0, 1, 0))
		}
	}

	return nil
}

// isYear reports whether s is exactly four ASCII digits.
func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func utc(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}
