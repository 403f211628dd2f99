package releasedate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{"Exact day with comma", "5 Jun, 2025", date(2025, time.June, 5)},
		{"Exact day without comma", "17 Jan 2020", date(2020, time.January, 17)},
		{"Exact day two digits", "31 Dec, 2024", date(2024, time.December, 31)},
		{"Full month name", "1 January 2002", date(2002, time.January, 1)},
		{"Bare year", "2027", date(2028, time.January, 1)},
		{"Negative year", "-123", nil},
		{"Signed year", "+202", nil},
		{"Three digit year", "202", nil},
		{"Month and year", "Apr 2025", date(2025, time.May, 1)},
		{"December rolls the year", "Dec 2025", date(2026, time.January, 1)},
		{"Q1", "Q1 2025", date(2025, time.April, 1)},
		{"Q2", "Q2 2025", date(2025, time.July, 1)},
		{"Q3", "Q3 2077", date(2077, time.October, 1)},
		{"Q4", "Q4 2025", date(2026, time.January, 1)},
		{"Invalid quarter", "Q5 2025", nil},
		{"Truncated quarter", "Q2", nil},
		{"Coming soon", "Coming soon", nil},
		{"To be announced", "To be announced", nil},
		{"Free text", "When it's done", nil},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s got %s", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
