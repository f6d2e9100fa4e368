package tools

import "time"

// DateComparison is the structured result of CompareDates. Both input dates
// are re-rendered in the canonical YYYY-MM-DD form.
type DateComparison struct {
	Date1        string `json:"date1"`
	Date2        string `json:"date2"`
	Date1Earlier bool   `json:"date1_earlier"`
	Date2Earlier bool   `json:"date2_earlier"`
	Equal        bool   `json:"equal"`
	DaysBetween  int    `json:"days_between"`
}

// CompareDates parses two date strings under one layout (Go reference layout,
// default 2006-01-02) and reports which is earlier and the absolute distance
// in days. It touches no store.
func CompareDates(date1, date2, layout string) (*DateComparison, error) {
	if layout == "" {
		layout = canonicalDateLayout
	}
	t1, err := time.Parse(layout, date1)
	if err != nil {
		return nil, validationf("invalid date1 %q: expected format %s", date1, layout)
	}
	t2, err := time.Parse(layout, date2)
	if err != nil {
		return nil, validationf("invalid date2 %q: expected format %s", date2, layout)
	}

	// Both times are midnight UTC, so the epoch difference is a whole number
	// of days. time.Duration saturates near 292 years and cannot be used here.
	seconds := t2.Unix() - t1.Unix()
	if seconds < 0 {
		seconds = -seconds
	}
	return &DateComparison{
		Date1:        t1.Format(canonicalDateLayout),
		Date2:        t2.Format(canonicalDateLayout),
		Date1Earlier: t1.Before(t2),
		Date2Earlier: t2.Before(t1),
		Equal:        t1.Equal(t2),
		DaysBetween:  int(seconds / 86400),
	}, nil
}
