package viewer

import "time"

// MonthGrid returns the weeks covering a month, Monday first. Leading
// and trailing cells belong to the adjacent months so every week has
// exactly seven days.
func MonthGrid(year int, month time.Month, loc *time.Location) [][]time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	// Back up to the Monday on or before the 1st.
	offset := (int(first.Weekday()) + 6) % 7
	cur := first.AddDate(0, 0, -offset)

	var weeks [][]time.Time
	for !cur.After(last) {
		week := make([]time.Time, 7)
		for i := range week {
			week[i] = cur
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
	}
	return weeks
}
